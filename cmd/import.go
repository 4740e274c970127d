package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/benchavg/internal/source"
	"github.com/theirongolddev/benchavg/internal/store"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Copy a JSON results document into a SQLite store",
	Long: "Import writes the records of a JSON document into a SQLite database that\n" +
		"serve, summary and records can read with --data-file results.db.",
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

var importOut string

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "Output database path (default: input name with .db)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	in := appCfg.General.DataFile
	if len(args) == 1 {
		in = args[0]
	}

	df, err := source.Inspect(in)
	if err != nil {
		return err
	}
	if df.Format != source.FormatJSON {
		return fmt.Errorf("import reads JSON documents; %s is already %s", df.Path, df.Format)
	}

	out := importOut
	if out == "" {
		out = strings.TrimSuffix(df.Path, ".json") + ".db"
	}
	if source.DetectFormat(out) != source.FormatSQLite {
		return fmt.Errorf("output %s needs a .db, .sqlite or .sqlite3 extension", out)
	}

	records, err := source.ParseFile(df.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", df.Path, err)
	}

	st, err := store.Open(out)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	info := store.ImportInfo{
		SourcePath: df.Path,
		MtimeNs:    df.ModTime.UnixNano(),
		SizeBytes:  df.Size,
	}
	if err := st.ReplaceRecords(cmd.Context(), records, info); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	stored, err := st.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting %s: %w", out, err)
	}
	if stored != len(records) {
		return fmt.Errorf("%s holds %d records after import, want %d", out, stored, len(records))
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Imported %d records from %s\n", stored, df.Path)
	}
	fmt.Printf("  %s\n", out)
	return nil
}
