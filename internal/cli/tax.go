package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finsight/internal/config"
	"finsight/internal/export"
)

var (
	flagTaxYear   int
	flagTaxExport bool
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Yearly tax summary, optionally exported to Google Sheets",
	RunE:  runTax,
}

func init() {
	taxCmd.Flags().IntVar(&flagTaxYear, "year", 0, "Tax year (defaults to the current year)")
	taxCmd.Flags().BoolVar(&flagTaxExport, "export", false, "Also write the summary to the configured spreadsheet")
	rootCmd.AddCommand(taxCmd)
}

func runTax(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	year := flagTaxYear
	if year == 0 {
		year = time.Now().Year()
	}

	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.TaxSummary(cmd.Context(), user, year)
	if err != nil {
		return err
	}

	if flagTaxExport {
		cfg := config.Load()
		exporter, err := export.NewSheetsExporter(cmd.Context(), cfg.SheetsSpreadsheetID, cfg.SheetsTabName)
		if err != nil {
			return fmt.Errorf("init exporter: %w", err)
		}
		ref, err := exporter.ExportTaxReport(cmd.Context(), report)
		if err != nil {
			return fmt.Errorf("export tax summary: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", ref)
	}

	return printJSON(report)
}
