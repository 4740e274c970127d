package cmd

import (
	"fmt"

	"github.com/theirongolddev/benchavg/internal/cli"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List benchmarking records",
	RunE:  runRecords,
}

var (
	recordsStart string
	recordsEnd   string
	recordsLimit int
	recordsRaw   bool
)

func init() {
	recordsCmd.Flags().StringVar(&recordsStart, "start", "", "Range start (ISO-8601, inclusive)")
	recordsCmd.Flags().StringVar(&recordsEnd, "end", "", "Range end (ISO-8601, inclusive)")
	recordsCmd.Flags().IntVarP(&recordsLimit, "limit", "l", 20, "Number of records to show (0 for all)")
	recordsCmd.Flags().BoolVar(&recordsRaw, "raw", false, "Dump records as Go values")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, _ []string) error {
	records, err := loadRecords(cmd.Context())
	if err != nil {
		return err
	}

	records, err = filterRecords(records, recordsStart, recordsEnd)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("\n  No records in the selected range.")
		return nil
	}

	total := len(records)
	if recordsLimit > 0 && len(records) > recordsLimit {
		records = records[:recordsLimit]
	}

	if recordsRaw {
		_, err := pp.Println(records)
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RECORDS  showing %d of %d", len(records), total)))
	fmt.Println()

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Timestamp,
			cli.Truncate(r.RequestID, 12),
			cli.FormatOptional(r.TokenCount, cli.FormatMetric),
			cli.FormatOptional(r.TimeToFirstToken, cli.FormatMillis),
			cli.FormatOptional(r.TimePerOutputToken, cli.FormatMillis),
			cli.FormatOptional(r.TotalGenerationTime, cli.FormatMillis),
			cli.Truncate(r.PromptText, 24),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Timestamp", "Request", "Tokens", "TTFT", "TPOT", "Total", "Prompt"},
		Rows:    rows,
	}))

	return nil
}
