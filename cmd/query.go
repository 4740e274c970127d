package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/benchavg/internal/cli"
	"github.com/theirongolddev/benchavg/internal/client"

	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query [start end]",
	Short: "Fetch averages from a running benchavg service",
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or start and end, got %d", len(args))
		}
		return nil
	},
	RunE: runQuery,
}

var queryAddr string

func init() {
	queryCmd.Flags().StringVar(&queryAddr, "addr", "", "Service address (default: server.addr from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	addr := queryAddr
	if addr == "" {
		addr = appCfg.Server.Addr
	}
	c := client.NewClient(addr)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	var (
		res client.Averages
		err error
	)
	title := "SERVICE AVERAGES  All records"
	if len(args) == 2 {
		res, err = c.FetchAverageRange(ctx, args[0], args[1])
		title = fmt.Sprintf("SERVICE AVERAGES  %s .. %s", args[0], args[1])
	} else {
		res, err = c.FetchAverage(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	if res.Empty {
		fmt.Println("  No records in the selected range.")
		fmt.Println()
		return nil
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Average"},
		Rows: [][]string{
			{"Token count", cli.FormatMetric(res.Stats.AvgTokenCount)},
			{"Time to first token", cli.FormatMillis(res.Stats.AvgTimeToFirstToken)},
			{"Time per output token", cli.FormatMillis(res.Stats.AvgTimePerOutputToken)},
			{"Total generation time", cli.FormatMillis(res.Stats.AvgTotalGenerationTime)},
		},
	}))
	fmt.Printf("  request %s\n\n", res.RequestID)
	return nil
}
