package cli

import (
	"github.com/spf13/cobra"
)

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Spending by category",
	RunE:  runSpending,
}

var payeesCmd = &cobra.Command{
	Use:   "payees",
	Short: "Spending by payee",
	RunE:  runPayees,
}

func init() {
	rootCmd.AddCommand(spendingCmd)
	rootCmd.AddCommand(payeesCmd)
}

func runSpending(cmd *cobra.Command, _ []string) error {
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

	report, err := svc.SpendingByCategory(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runPayees(cmd *cobra.Command, _ []string) error {
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

	report, err := svc.SpendingByPayee(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}
