package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file alone so environment overrides are not persisted.
	cfg, err := config.LoadFile(config.ConfigPath())
	if err != nil {
		return err
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	tui.ApplySetup(&cfg, vals)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	if !cfg.General.Debug {
		fmt.Println("  Dev mode is off: records will not load until it is enabled.")
	}
	fmt.Println("  Run `benchavg setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
