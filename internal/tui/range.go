package tui

import (
	"time"

	"github.com/theirongolddev/benchavg/internal/pipeline"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rangeState is the inclusive time range applied to the records, and the
// two inputs used to edit it.
type rangeState struct {
	active   bool
	start    time.Time
	end      time.Time
	startRaw string
	endRaw   string

	editing bool
	focus   int // 0 start, 1 end
	inputs  [2]textinput.Model
	err     error
}

func newRangeInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 40
	ti.Width = 20
	ti.Prompt = ""
	return ti
}

func newRangeState() rangeState {
	return rangeState{
		inputs: [2]textinput.Model{
			newRangeInput("2024-01-01T00:00:00"),
			newRangeInput("2024-12-31T23:59:59"),
		},
	}
}

func (r *rangeState) clear() {
	r.active = false
	r.start, r.end = time.Time{}, time.Time{}
	r.startRaw, r.endRaw = "", ""
}

func (r *rangeState) setFocus(i int) tea.Cmd {
	r.focus = i
	r.inputs[i].Focus()
	r.inputs[1-i].Blur()
	return textinput.Blink
}

func (a App) startRangeEdit() (tea.Model, tea.Cmd) {
	a.rng.editing = true
	a.rng.err = nil
	a.rng.inputs[0].SetValue(a.rng.startRaw)
	a.rng.inputs[1].SetValue(a.rng.endRaw)
	return a, a.rng.setFocus(0)
}

// applyRange parses the inputs and, when both bounds are valid, makes them
// the active range.
func (a *App) applyRange() error {
	startRaw := a.rng.inputs[0].Value()
	endRaw := a.rng.inputs[1].Value()
	start, end, err := pipeline.ParseRange(startRaw, endRaw)
	if err != nil {
		return err
	}
	a.rng.active = true
	a.rng.start, a.rng.end = start, end
	a.rng.startRaw, a.rng.endRaw = startRaw, endRaw
	a.recompute()
	return nil
}

func (a App) updateRangeInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			a.rng.editing = false
			a.rng.err = nil
			a.rng.inputs[0].Blur()
			a.rng.inputs[1].Blur()
			return a, nil
		case "tab", "shift+tab", "up", "down":
			return a, a.rng.setFocus(1 - a.rng.focus)
		case "enter":
			if a.rng.focus == 0 && a.rng.inputs[1].Value() == "" {
				return a, a.rng.setFocus(1)
			}
			if err := a.applyRange(); err != nil {
				a.rng.err = err
				return a, nil
			}
			a.rng.editing = false
			a.rng.err = nil
			a.rng.inputs[0].Blur()
			a.rng.inputs[1].Blur()
			a.setNotice("range applied", false)
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.rng.inputs[a.rng.focus], cmd = a.rng.inputs[a.rng.focus].Update(msg)
	return a, cmd
}

// renderRangeLine renders the line under the tab bar: the active range, or
// the editor while editing.
func (a App) renderRangeLine(w int) string {
	t := theme.Active

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	row := lipgloss.NewStyle().Background(t.Surface).Width(w).MaxHeight(1)

	if a.rng.editing {
		field := func(i int) string {
			style := lipgloss.NewStyle().Background(t.SurfaceHover)
			if i == a.rng.focus {
				style = style.Foreground(t.TextPrimary)
			} else {
				style = style.Foreground(t.TextMuted)
			}
			return style.Render(a.rng.inputs[i].View())
		}
		line := dim.Render(" from ") + field(0) + dim.Render("  to ") + field(1)
		if a.rng.err != nil {
			line += errStyle.Render("  " + a.rng.err.Error())
		} else {
			line += dim.Render("  ⏎ apply · tab · esc")
		}
		return row.Render(line)
	}

	if !a.rng.active {
		return row.Render(dim.Render(" all records") + dim.Render("  · / to set a time range"))
	}
	line := dim.Render(" ") + accent.Render(a.rng.startRaw) + dim.Render(" → ") + accent.Render(a.rng.endRaw) +
		dim.Render("  · c to clear")
	return row.Render(line)
}
