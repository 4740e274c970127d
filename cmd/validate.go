package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/benchavg/internal/source"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a results document against the record schema",
	Long: "Validate reports schema violations and records with missing metrics.\n" +
		"It never changes how averages are computed: missing metrics still count as 0.",
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var (
	okText   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failText = color.New(color.FgRed, color.Bold).SprintFunc()
	warnText = color.New(color.FgYellow).SprintFunc()
	dimText  = color.New(color.Faint).SprintFunc()
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	path := appCfg.General.DataFile
	if len(args) == 1 {
		path = args[0]
	}

	df, err := source.Inspect(path)
	if err != nil {
		return err
	}
	if df.Format != source.FormatJSON {
		return fmt.Errorf("validate works on JSON documents; %s is %s", df.Path, df.Format)
	}

	data, err := os.ReadFile(df.Path) //nolint:gosec // path comes from local configuration
	if err != nil {
		return err
	}

	report, err := source.Validate(data)
	if err != nil {
		fmt.Printf("\n  %s %s is not valid JSON\n\n", failText("✗"), df.Path)
		return err
	}

	fmt.Println()
	if report.Valid {
		fmt.Printf("  %s %s matches the record schema\n", okText("✓"), df.Path)
	} else {
		fmt.Printf("  %s %s has %d schema issue(s)\n", failText("✗"), df.Path, len(report.Issues))
		for _, issue := range report.Issues {
			fmt.Printf("    %s %s\n", failText("•"), issue)
		}
	}

	// Missing metrics are legal but silently averaged as 0, so surface them.
	records, parseErr := source.Parse(data)
	if parseErr == nil {
		var incomplete int
		for i, r := range records {
			missing := r.MissingFields()
			if len(missing) == 0 {
				continue
			}
			incomplete++
			fmt.Printf("    %s record %d (%s): missing %s\n",
				warnText("!"), i, displayID(r.RequestID), strings.Join(missing, ", "))
		}
		fmt.Printf("  %s\n", dimText(fmt.Sprintf("%d records, %d incomplete", len(records), incomplete)))
	}
	fmt.Println()

	if !report.Valid {
		return errors.New("validation failed")
	}
	return parseErr
}

func displayID(id string) string {
	if id == "" {
		return "no request_id"
	}
	return id
}
