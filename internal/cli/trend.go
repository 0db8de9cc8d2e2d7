package cli

import (
	"github.com/spf13/cobra"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Monthly spending trend by category",
	RunE:  runTrend,
}

var weekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Weekend versus weekday spending",
	RunE:  runWeekday,
}

func init() {
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(weekdayCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	start, end, err := reportWindow()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.MonthlySpendingTrend(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runWeekday(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	start, end, err := reportWindow()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.WeekendVsWeekday(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}
