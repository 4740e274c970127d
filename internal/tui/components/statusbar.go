package components

import (
	"strings"

	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the status bar reports on its right side.
type StatusInfo struct {
	Records  string
	LoadTime string
	Watching bool
	Message  string // transient notice, replaces the key hints
	IsError  bool
}

// RenderStatusBar renders the bottom bar: key hints left, data state right.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	left := base.Render(" [?]help  [/]range  [r]eload  [q]uit")
	if info.Message != "" {
		color := t.Green
		if info.IsError {
			color = t.Red
		}
		left = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(" " + info.Message)
	}

	var right []string
	if info.Watching {
		right = append(right, accent.Render("● watching"))
	}
	if info.Records != "" {
		right = append(right, base.Render(info.Records+" records"))
	}
	if info.LoadTime != "" {
		right = append(right, base.Render("loaded in "+info.LoadTime))
	}
	rightStr := strings.Join(right, base.Render("  ")) + base.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}
	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}
