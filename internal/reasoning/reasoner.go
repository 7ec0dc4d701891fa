// Package reasoning adds a structured reasoning layer on top of the answer
// pipeline: the model is prompted for labeled REASONING / TOOL_NEEDED /
// TOOL_CALL / FINAL_ANSWER sections, and requested tool calls run locally
// against deterministic math and string helpers.
package reasoning

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaleido-ai/kaleido/internal/domain"
	"github.com/kaleido-ai/kaleido/internal/observability"
)

// Result is the outcome of one reasoning run.
type Result struct {
	Query        string
	Reasoning    string
	ToolCall     string
	ToolResult   string
	ToolError    string
	FinalAnswer  string
	Provider     string
	Model        string
	UsedFallback bool
}

// Reasoner drives structured reasoning through the fallback pipeline.
type Reasoner struct {
	fallback *domain.FallbackService
}

// NewReasoner creates a Reasoner backed by the given fallback service.
func NewReasoner(fallback *domain.FallbackService) *Reasoner {
	return &Reasoner{fallback: fallback}
}

// Run asks the pipeline to reason about the query, parses the labeled
// response, and executes at most one requested tool call. Tool failures do
// not fail the run; the model's own answer stands and the error is
// reported alongside it.
func (r *Reasoner) Run(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyPrompt
	}

	outcome, err := r.fallback.Answer(ctx, buildPrompt(query), "", "")
	if err != nil {
		return nil, err
	}

	sections := ParseSections(outcome.Result.Answer)
	result := &Result{
		Query:        query,
		Reasoning:    sections.Reasoning,
		FinalAnswer:  sections.FinalAnswer,
		Provider:     outcome.Result.Provider,
		Model:        outcome.Result.Model,
		UsedFallback: outcome.Result.UsedFallback,
	}

	if sections.WantsTool() {
		result.ToolCall = sections.ToolCall
		value, toolErr := Dispatch(sections.ToolCall)
		if toolErr != nil {
			result.ToolError = toolErr.Error()
			observability.FromContext(ctx).Warn("tool call failed",
				observability.String("call", sections.ToolCall),
				observability.Error(toolErr))
		} else {
			result.ToolResult = value
			if result.FinalAnswer == "" {
				result.FinalAnswer = value
			}
		}
	}

	if strings.TrimSpace(result.FinalAnswer) == "" {
		result.FinalAnswer = outcome.Result.Answer
	}
	return result, nil
}

func buildPrompt(query string) string {
	return fmt.Sprintf(`You are a careful assistant with access to tools.

%s

Answer the question below. Respond in exactly this format:

REASONING: your step-by-step thinking
TOOL_NEEDED: YES or NO
TOOL_CALL: the single tool call to run, e.g. math.add(12, 7), or NONE
FINAL_ANSWER: your answer to the question

If a tool can compute part of the answer, request it and use its result.

Question: %s`, ToolDescriptions(), query)
}
