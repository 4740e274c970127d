package cmd

import (
	"fmt"

	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/logging"
	"github.com/theirongolddev/benchavg/internal/tui"
	"github.com/theirongolddev/benchavg/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagNoWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when the data file changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor so background fills always produce ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log lines on stderr would tear the alt screen.
	if err := logging.Init(logging.Options{Debug: appCfg.General.Debug, Quiet: true}); err != nil {
		return err
	}

	app := tui.NewApp(tui.Options{
		Source: newLoader(),
		Config: appCfg,
		Setup:  !config.Exists(),
		Watch:  !flagNoWatch,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	final, err := p.Run()
	if a, ok := final.(tui.App); ok {
		_ = a.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
