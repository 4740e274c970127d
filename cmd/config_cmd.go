// Package cmd implements the benchavg CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/benchavg/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var envVars = []string{
	config.EnvDataFile,
	config.EnvDebug,
	config.EnvAddr,
	config.EnvLegacyResponses,
	config.EnvTheme,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [general]")
	fmt.Printf("    data_file: %s\n", cfg.General.DataFile)
	fmt.Printf("    debug:     %v\n", cfg.General.Debug)
	fmt.Println()

	fmt.Println("  [server]")
	fmt.Printf("    addr:             %s\n", cfg.Server.Addr)
	fmt.Printf("    legacy_responses: %v\n", cfg.Server.LegacyResponses)
	fmt.Println()

	fmt.Println("  [appearance]")
	fmt.Printf("    theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	var set []string
	for _, name := range envVars {
		if v, ok := os.LookupEnv(name); ok {
			set = append(set, fmt.Sprintf("%s=%s", name, v))
		}
	}
	if len(set) > 0 {
		fmt.Println("  Environment overrides:")
		for _, s := range set {
			fmt.Printf("    %s\n", s)
		}
		fmt.Println()
	}

	fmt.Println("  Flags (--data-file, --debug) override both. Run `benchavg setup` to reconfigure.")
	return nil
}
