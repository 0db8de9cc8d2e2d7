package cli

import (
	"github.com/spf13/cobra"
)

var flagYears int

var yoyCmd = &cobra.Command{
	Use:   "yoy",
	Short: "Year-over-year monthly comparison",
	RunE:  runYoY,
}

func init() {
	yoyCmd.Flags().IntVar(&flagYears, "years", 3, "Number of years to compare, including the current one")
	rootCmd.AddCommand(yoyCmd)
}

func runYoY(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.YearOverYear(cmd.Context(), user, flagYears)
	if err != nil {
		return err
	}
	return printJSON(report)
}
