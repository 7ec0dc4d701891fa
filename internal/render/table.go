// Package render formats comparison results for the terminal and for
// chart output. It is pure presentation: nothing here mutates the matrix.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kaleido-ai/kaleido/internal/catalog"
	"github.com/kaleido-ai/kaleido/internal/domain"
)

// Writer wraps an io.Writer with formatting helpers for CLI output.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer that writes to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Stdout returns a Writer that writes to os.Stdout.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Matrix renders each comparison cell as a bordered block, in matrix
// order: answer first, then latency and token metadata.
func (w *Writer) Matrix(m *domain.ComparisonMatrix) {
	if m == nil || len(m.Cells) == 0 {
		fmt.Fprintln(w.out, "No results.")
		return
	}

	fmt.Fprintf(w.out, "Query: %s\n\n", m.Query)

	for _, cell := range m.Cells {
		title := fmt.Sprintf("%s / %s (%s)", cell.Target.Provider, cell.Target.Model, cell.Target.ModelType)
		fmt.Fprintln(w.out, headerLine(title))

		result := cell.Result
		if result.ErrorKind != domain.ErrorKindNone {
			fmt.Fprintf(w.out, "%s %s\n", color.RedString("FAILED:"), describeKind(result.ErrorKind))
		} else {
			fmt.Fprintln(w.out, result.Answer)
		}

		fmt.Fprintf(w.out, "%s\n\n", color.New(color.Faint).Sprintf(
			"time %.2fs | tokens %d (prompt %d, completion %d)",
			result.LatencySeconds, result.TotalTokens(), result.PromptTokens, result.CompletionTokens,
		))
	}
}

// Catalog renders the model catalog as an aligned listing.
func (w *Writer) Catalog(entries []catalog.Entry) {
	fmt.Fprintln(w.out, "AVAILABLE MODELS")
	fmt.Fprintln(w.out)
	for _, entry := range entries {
		fmt.Fprintf(w.out, "  %-12s %-38s %-11s ctx %-7d %s\n",
			entry.Provider, entry.Model, entry.Type, entry.ContextWindow, entry.Description)
	}
}

// Credentials renders per-provider API key status.
func (w *Writer) Credentials(status map[string]bool) {
	fmt.Fprintln(w.out, "API KEY STATUS")
	fmt.Fprintln(w.out)
	for _, name := range []string{"openai", "anthropic", "huggingface"} {
		mark := color.RedString("missing")
		if status[name] {
			mark = color.GreenString("configured")
		}
		fmt.Fprintf(w.out, "  %-12s %s\n", name, mark)
	}
	fmt.Fprintln(w.out)
}

func headerLine(title string) string {
	line := strings.Repeat("=", 3)
	return fmt.Sprintf("%s %s %s", line, color.CyanString(title), line)
}

func describeKind(kind domain.ErrorKind) string {
	switch kind {
	case domain.ErrorKindUnavailable:
		return "not configured / unavailable"
	case domain.ErrorKindTimeout:
		return "timed out"
	case domain.ErrorKindRateLimited:
		return "rate limited"
	case domain.ErrorKindAuth:
		return "authentication failed"
	case domain.ErrorKindInvalidInput:
		return "rejected input"
	default:
		return string(kind)
	}
}
