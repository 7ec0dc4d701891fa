package reasoning

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSections_FullResponse(t *testing.T) {
	response := `REASONING: The question asks for a sum, which the math tool handles.
TOOL_NEEDED: YES
TOOL_CALL: math.add(12, 7)
FINAL_ANSWER: The sum is 19.`

	s := ParseSections(response)
	require.Equal(t, "The question asks for a sum, which the math tool handles.", s.Reasoning)
	require.Equal(t, "YES", s.ToolNeeded)
	require.Equal(t, "math.add(12, 7)", s.ToolCall)
	require.Equal(t, "The sum is 19.", s.FinalAnswer)
	require.True(t, s.WantsTool())
}

func TestParseSections_NoToolNeeded(t *testing.T) {
	response := `REASONING: This is general knowledge.
TOOL_NEEDED: NO
TOOL_CALL: NONE
FINAL_ANSWER: Paris.`

	s := ParseSections(response)
	require.Equal(t, "Paris.", s.FinalAnswer)
	require.False(t, s.WantsTool())
}

func TestParseSections_UnlabeledResponse(t *testing.T) {
	s := ParseSections("Just a plain answer with no structure at all.")
	require.Equal(t, "Just a plain answer with no structure at all.", s.FinalAnswer)
	require.Empty(t, s.Reasoning)
	require.False(t, s.WantsTool())
}

func TestParseSections_MultilineSections(t *testing.T) {
	response := `REASONING: First I consider the numbers.
Then I pick the right tool.
TOOL_NEEDED: YES
TOOL_CALL: math.average(1, 2, 3)
FINAL_ANSWER: The average
is 2.`

	s := ParseSections(response)
	require.Contains(t, s.Reasoning, "First I consider")
	require.Contains(t, s.Reasoning, "pick the right tool")
	require.Equal(t, "math.average(1, 2, 3)", s.ToolCall)
	require.Equal(t, "The average\nis 2.", s.FinalAnswer)
}

func TestParseSections_MissingLabelsAreBestEffort(t *testing.T) {
	response := `REASONING: thinking out loud
FINAL_ANSWER: 42`

	s := ParseSections(response)
	require.Equal(t, "thinking out loud", s.Reasoning)
	require.Empty(t, s.ToolNeeded)
	require.Equal(t, "42", s.FinalAnswer)
	require.False(t, s.WantsTool())
}

func TestWantsTool_RequiresYesAndACall(t *testing.T) {
	require.False(t, Sections{ToolNeeded: "YES", ToolCall: ""}.WantsTool())
	require.False(t, Sections{ToolNeeded: "YES", ToolCall: "NONE"}.WantsTool())
	require.False(t, Sections{ToolNeeded: "NO", ToolCall: "math.add(1, 2)"}.WantsTool())
	require.True(t, Sections{ToolNeeded: "yes", ToolCall: "math.add(1, 2)"}.WantsTool())
}
