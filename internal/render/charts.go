package render

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kaleido-ai/kaleido/internal/domain"
)

// WriteCharts renders the matrix into a self-contained HTML page with
// latency and token-usage bar charts, one bar per model in matrix order.
func WriteCharts(path string, m *domain.ComparisonMatrix) error {
	if m == nil || len(m.Cells) == 0 {
		return fmt.Errorf("nothing to visualize")
	}

	labels := make([]string, 0, len(m.Cells))
	latency := make([]opts.BarData, 0, len(m.Cells))
	promptTokens := make([]opts.BarData, 0, len(m.Cells))
	completionTokens := make([]opts.BarData, 0, len(m.Cells))

	for _, cell := range m.Cells {
		labels = append(labels, fmt.Sprintf("%s/%s", cell.Target.Provider, cell.Target.Model))
		latency = append(latency, opts.BarData{Value: cell.Result.LatencySeconds})
		promptTokens = append(promptTokens, opts.BarData{Value: cell.Result.PromptTokens})
		completionTokens = append(completionTokens, opts.BarData{Value: cell.Result.CompletionTokens})
	}

	latencyBar := charts.NewBar()
	latencyBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Response time (s)", Subtitle: m.Query}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)
	latencyBar.SetXAxis(labels).AddSeries("latency", latency)

	tokenBar := charts.NewBar()
	tokenBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Token usage"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	tokenBar.SetXAxis(labels).
		AddSeries("prompt", promptTokens).
		AddSeries("completion", completionTokens)

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(latencyBar, tokenBar)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render charts: %w", err)
	}
	return nil
}
