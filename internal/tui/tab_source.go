package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/tui/components"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSourceTab(cw int) string {
	t := theme.Active

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	on := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	flag := func(b bool) string {
		if b {
			return on.Render("on")
		}
		return off.Render("off")
	}
	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-18s", name)) + v
	}

	df := a.dataFile
	path := df.Path
	if path == "" {
		path = a.cfg.General.DataFile
	}

	var lines []string
	lines = append(lines, row("Path", value.Render(cli.Truncate(path, components.CardInnerWidth(cw)-18))))
	if df.Size > 0 || !df.ModTime.IsZero() {
		lines = append(lines,
			row("Format", value.Render(df.Format.String())),
			row("Size", value.Render(cli.FormatBytes(df.Size))),
			row("Modified", value.Render(cli.FormatAge(df.ModTime))),
		)
	}
	if imp := a.lastImport; imp != nil {
		lines = append(lines,
			row("Imported from", value.Render(cli.Truncate(imp.SourcePath, components.CardInnerWidth(cw)-18))),
			row("Imported records", value.Render(cli.FormatNumber(int64(imp.RecordCount)))),
			row("Imported", value.Render(cli.FormatAge(imp.ImportedAt))),
		)
	}
	lines = append(lines,
		row("Dev mode", flag(a.cfg.General.Debug)),
		row("Live reload", flag(a.watcher != nil)),
	)
	if a.loadErr == nil {
		lines = append(lines,
			row("Records", value.Render(cli.FormatNumber(int64(len(a.records))))),
			row("Incomplete", value.Render(cli.FormatNumber(int64(incompleteCount(a.records))))),
		)
	} else {
		lines = append(lines, row("Load error", off.Render(cli.Truncate(a.loadErr.Error(), components.CardInnerWidth(cw)-18))))
	}

	cfgLines := []string{
		row("Config file", value.Render(config.ConfigPath())),
		row("Listen address", value.Render(a.cfg.Server.Addr)),
		row("Legacy responses", flag(a.cfg.Server.LegacyResponses)),
		row("Theme", value.Render(theme.Active.Name)),
	}

	return components.ContentCard("Data file", strings.Join(lines, "\n"), cw) + "\n" +
		components.ContentCard("Configuration", strings.Join(cfgLines, "\n"), cw)
}
