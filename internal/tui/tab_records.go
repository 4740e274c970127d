package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/tui/components"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	recordsChrome = 4 // card border, title, column header
	detailHeight  = 7
)

// recordRows is how many list rows fit above the detail card.
func (a App) recordRows() int {
	rows := a.contentHeight() - recordsChrome - detailHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a App) renderRecordsTab(cw, h int) string {
	if a.loadErr != nil {
		return a.renderErrorCard("Could not load records", a.loadErr, cw)
	}
	if a.filtErr != nil {
		return a.renderErrorCard("Could not apply range", a.filtErr, cw)
	}

	t := theme.Active
	inner := components.CardInnerWidth(cw)

	if len(a.filtered) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Records", muted.Render("No records to show."), cw)
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(inner)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true).Width(inner)

	// Fixed numeric columns; the request id takes what is left.
	idW := inner - 5 - 20 - 4*11 - 2
	if idW < 8 {
		idW = 8
	}
	format := fmt.Sprintf("%%-5s%%-20s%%-%ds%%10s %%10s %%10s %%10s", idW)

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf(format, "#", "timestamp", "request", "tokens", "ttft", "tpot", "total")))

	rows := a.recordRows()
	if rows > h {
		rows = h
	}
	end := a.offset + rows
	if end > len(a.filtered) {
		end = len(a.filtered)
	}
	for i := a.offset; i < end; i++ {
		r := a.filtered[i]
		line := fmt.Sprintf(format,
			fmt.Sprintf("%d", i+1),
			cli.Truncate(r.Timestamp, 19),
			cli.Truncate(r.RequestID, idW-1),
			cli.FormatOptional(r.TokenCount, cli.FormatMetric),
			cli.FormatOptional(r.TimeToFirstToken, cli.FormatMillis),
			cli.FormatOptional(r.TimePerOutputToken, cli.FormatMillis),
			cli.FormatOptional(r.TotalGenerationTime, cli.FormatMillis),
		)
		b.WriteString("\n")
		if i == a.cursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}

	title := fmt.Sprintf("Records %d-%d of %d", a.offset+1, end, len(a.filtered))
	list := components.ContentCard(title, b.String(), cw)
	return list + "\n" + a.renderRecordDetail(cw)
}

func (a App) renderRecordDetail(cw int) string {
	t := theme.Active
	if a.cursor < 0 || a.cursor >= len(a.filtered) {
		return ""
	}
	r := a.filtered[a.cursor]
	inner := components.CardInnerWidth(cw)

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)

	field := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-10s", name)) + value.Render(cli.Truncate(v, inner-10))
	}

	lines := []string{
		field("request", r.RequestID),
		field("prompt", r.PromptText),
		field("output", r.GeneratedText),
	}
	if missing := r.MissingFields(); len(missing) > 0 {
		lines = append(lines, warn.Render(cli.Truncate("missing: "+strings.Join(missing, ", ")+" (counted as 0)", inner)))
	}
	return components.ContentCard("Selected record", strings.Join(lines, "\n"), cw)
}
