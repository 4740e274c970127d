package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/model"
	"github.com/theirongolddev/benchavg/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Average metrics over all records or a time range",
	RunE:  runSummary,
}

var (
	summaryStart string
	summaryEnd   string
	summaryJSON  bool
	summaryChart bool
)

func init() {
	for _, c := range []*cobra.Command{summaryCmd, rootCmd} {
		c.Flags().StringVar(&summaryStart, "start", "", "Range start (ISO-8601, inclusive)")
		c.Flags().StringVar(&summaryEnd, "end", "", "Range end (ISO-8601, inclusive)")
		c.Flags().BoolVar(&summaryJSON, "json", false, "Print the averages as JSON, like the HTTP API")
		c.Flags().BoolVar(&summaryChart, "chart", false, "Plot total generation time per record")
	}
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	records, err := loadRecords(cmd.Context())
	if err != nil {
		return err
	}

	filtered, err := filterRecords(records, summaryStart, summaryEnd)
	if err != nil {
		return err
	}
	stats := pipeline.CalculateAverage(filtered)

	if summaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	title := "BENCHMARK AVERAGES  All records"
	if summaryStart != "" {
		title = fmt.Sprintf("BENCHMARK AVERAGES  %s .. %s", summaryStart, summaryEnd)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if stats.Empty() {
		fmt.Println("  No records in the selected range.")
		return nil
	}

	var missing int
	for _, r := range filtered {
		if len(r.MissingFields()) > 0 {
			missing++
		}
	}

	rows := [][]string{
		{"Records", cli.FormatNumber(int64(stats.Records))},
		{"---"},
		{"Token count", cli.FormatMetric(stats.AvgTokenCount)},
		{"Time to first token", cli.FormatMillis(stats.AvgTimeToFirstToken)},
		{"Time per output token", cli.FormatMillis(stats.AvgTimePerOutputToken)},
		{"Total generation time", cli.FormatMillis(stats.AvgTotalGenerationTime)},
	}
	if missing > 0 {
		rows = append(rows,
			[]string{"---"},
			[]string{"Incomplete records", fmt.Sprintf("%d (%s, counted as 0)",
				missing, cli.FormatPercent(float64(missing)/float64(len(filtered))))},
		)
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Average"},
		Rows:    rows,
	}))

	if summaryChart {
		series := make([]float64, 0, len(filtered))
		for _, r := range filtered {
			series = append(series, model.Value(r.TotalGenerationTime))
		}
		fmt.Println()
		fmt.Printf("  Trend %s\n", cli.RenderSparkline(series))
		fmt.Println()
		fmt.Println(cli.RenderLineChart(series, 60, 10, "total generation time per record (ms)"))
	}
	fmt.Println()

	return nil
}
