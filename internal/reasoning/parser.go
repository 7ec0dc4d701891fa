package reasoning

import (
	"regexp"
	"strings"
)

// Sections holds the labeled parts of a structured model response.
type Sections struct {
	Reasoning   string
	ToolNeeded  string
	ToolCall    string
	FinalAnswer string
}

var (
	reasoningRe  = regexp.MustCompile(`(?is)REASONING:\s*(.*?)\s*(?:TOOL_NEEDED:|TOOL_CALL:|FINAL_ANSWER:|$)`)
	toolNeededRe = regexp.MustCompile(`(?is)TOOL_NEEDED:\s*(.*?)\s*(?:TOOL_CALL:|FINAL_ANSWER:|$)`)
	toolCallRe   = regexp.MustCompile(`(?is)TOOL_CALL:\s*(.*?)\s*(?:FINAL_ANSWER:|$)`)
	finalRe      = regexp.MustCompile(`(?is)FINAL_ANSWER:\s*(.*)`)
)

// ParseSections extracts the labeled sections from a model response.
// Parsing is best effort: missing labels leave their fields empty, and a
// response with no labels at all lands whole in FinalAnswer.
func ParseSections(response string) Sections {
	s := Sections{
		Reasoning:   firstGroup(reasoningRe, response),
		ToolNeeded:  firstGroup(toolNeededRe, response),
		ToolCall:    firstGroup(toolCallRe, response),
		FinalAnswer: firstGroup(finalRe, response),
	}

	if s.Reasoning == "" && s.ToolNeeded == "" && s.ToolCall == "" && s.FinalAnswer == "" {
		s.FinalAnswer = strings.TrimSpace(response)
	}
	return s
}

// WantsTool reports whether the model asked for a tool invocation.
func (s Sections) WantsTool() bool {
	needed := strings.ToUpper(strings.TrimSpace(s.ToolNeeded))
	return needed == "YES" && strings.TrimSpace(s.ToolCall) != "" &&
		!strings.EqualFold(strings.TrimSpace(s.ToolCall), "none")
}

func firstGroup(re *regexp.Regexp, text string) string {
	match := re.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
