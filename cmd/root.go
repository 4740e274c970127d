package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/config"
	"github.com/theirongolddev/benchavg/internal/logging"
	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagDataFile string
	flagDebug    bool
	flagQuiet    bool
)

// appCfg is the resolved configuration: file, then environment, then flags.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "benchavg",
	Short:             "LLM benchmarking averages",
	Long:              "Average token counts and latencies over LLM benchmarking records, from the CLI or over HTTP.",
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	defer func() { _ = logging.Close() }()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataFile, "data-file", "f", "", "Benchmarking results file (.json or .db)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable dev mode: allow loading records and log at debug level")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

func resolveConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data-file") {
		cfg.General.DataFile = flagDataFile
	}
	if flags.Changed("debug") {
		cfg.General.Debug = flagDebug
	}
	appCfg = cfg

	return logging.Init(logging.Options{Debug: cfg.General.Debug, Quiet: flagQuiet})
}

func newLoader() *pipeline.Loader {
	return pipeline.NewLoader(appCfg.General.DataFile, appCfg.General.Debug)
}

// loadRecords is the shared data loading path used by the offline commands.
func loadRecords(ctx context.Context) ([]model.Record, error) {
	loader := newLoader()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading %s...\n", loader.DataFile)
	}

	records, err := loader.Load(ctx)
	if err != nil {
		return nil, explainLoadError(err)
	}

	if !flagQuiet {
		if df, err := loader.Inspect(); err == nil {
			fmt.Fprintf(os.Stderr, "  Loaded %s records (%s %s, modified %s)\n",
				cli.FormatNumber(int64(len(records))),
				cli.FormatBytes(df.Size), df.Format,
				cli.FormatAge(df.ModTime),
			)
		}
	}
	logging.Debug("records loaded", "count", len(records), "data_file", loader.DataFile)
	return records, nil
}

// filterRecords applies --start/--end when both are given.
func filterRecords(records []model.Record, start, end string) ([]model.Record, error) {
	if start == "" && end == "" {
		return records, nil
	}
	if start == "" || end == "" {
		return nil, errors.New("--start and --end must be given together")
	}
	s, e, err := pipeline.ParseRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w (want YYYY-MM-DDTHH:MM:SS)", err)
	}
	return pipeline.FilterByRange(records, s, e)
}

func explainLoadError(err error) error {
	switch {
	case errors.Is(err, pipeline.ErrFeatureDisabled):
		return fmt.Errorf("%w\n  Enable dev mode with --debug, %s=true, or [general] debug = true", err, config.EnvDebug)
	case errors.Is(err, pipeline.ErrDataNotFound):
		return fmt.Errorf("%w\n  Point --data-file at a benchmarking results file", err)
	}
	return err
}
