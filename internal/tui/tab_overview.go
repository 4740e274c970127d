package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/tui/components"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	if a.loadErr != nil {
		return a.renderErrorCard("Could not load records", a.loadErr, cw)
	}
	if a.filtErr != nil {
		return a.renderErrorCard("Could not apply range", a.filtErr, cw)
	}

	t := theme.Active
	s := a.stats

	countNote := "all records"
	if a.rng.active {
		countNote = fmt.Sprintf("of %s in file", cli.FormatNumber(int64(len(a.records))))
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Records", Value: cli.FormatNumber(int64(s.Records)), Note: countNote},
		{Label: "Avg tokens", Value: averageOrDash(s, s.AvgTokenCount, cli.FormatMetric), Note: "token_count"},
		{Label: "Avg TTFT", Value: averageOrDash(s, s.AvgTimeToFirstToken, cli.FormatMillis), Note: "time to first token"},
		{Label: "Avg TPOT", Value: averageOrDash(s, s.AvgTimePerOutputToken, cli.FormatMillis), Note: "time per output token"},
		{Label: "Avg total", Value: averageOrDash(s, s.AvgTotalGenerationTime, cli.FormatMillis), Note: "generation time"},
	}, cw))
	b.WriteString("\n")

	if s.Empty() {
		msg := "The data file has no records."
		if a.rng.active {
			msg = "No records fall inside the range. The API answers {} for it."
		}
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Averages", muted.Render(msg), cw))
		return b.String()
	}

	inner := components.CardInnerWidth(cw)
	totals := series(a.filtered, func(r model.Record) *float64 { return r.TotalGenerationTime })
	chart := cli.RenderLineChart(totals, inner-12, 8, "total_generation_time (ms), record order")
	b.WriteString(components.ContentCard("Generation time", chart, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	ttft := series(a.filtered, func(r model.Record) *float64 { return r.TimeToFirstToken })
	tokens := series(a.filtered, func(r model.Record) *float64 { return r.TokenCount })
	spark := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("TTFT", spark.Render(cli.Truncate(cli.RenderSparkline(ttft), components.CardInnerWidth(halves[0]))), halves[0]),
		components.ContentCard("Tokens", spark.Render(cli.Truncate(cli.RenderSparkline(tokens), components.CardInnerWidth(halves[1]))), halves[1]),
	}))

	if n := incompleteCount(a.filtered); n > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Background)
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf(" %d record(s) miss numeric fields; they count as 0 in the averages.", n)))
	}
	return b.String()
}

func (a App) renderErrorCard(title string, err error, cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := errStyle.Render(cli.Truncate(err.Error(), components.CardInnerWidth(cw)))
	if hint := loadErrorHint(err); hint != "" {
		body += "\n\n" + hintStyle.Render(hint)
	}
	return components.ContentCard(title, body, cw)
}

func averageOrDash(s model.AverageStats, v float64, format func(float64) string) string {
	if s.Empty() {
		return "-"
	}
	return format(v)
}

// series extracts one field per record, missing values as zero.
func series(records []model.Record, field func(model.Record) *float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = model.Value(field(r))
	}
	return out
}

func incompleteCount(records []model.Record) int {
	n := 0
	for _, r := range records {
		if len(r.MissingFields()) > 0 {
			n++
		}
	}
	return n
}
