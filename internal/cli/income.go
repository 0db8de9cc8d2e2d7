package cli

import (
	"github.com/spf13/cobra"
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Income by source category",
	RunE:  runIncome,
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Monthly income versus expenses",
	RunE:  runCashflow,
}

func init() {
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(cashflowCmd)
}

func runIncome(cmd *cobra.Command, _ []string) error {
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

	report, err := svc.IncomeBySource(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runCashflow(cmd *cobra.Command, _ []string) error {
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

	report, err := svc.IncomeVsExpenses(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}
