package cli

import (
	"github.com/spf13/cobra"

	"finsight/internal/reports"
)

var flagMinOccurrences int

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Recurring expenses classified by frequency",
	RunE:  runRecurring,
}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Payment history against scheduled bills",
	RunE:  runBills,
}

func init() {
	recurringCmd.Flags().IntVar(&flagMinOccurrences, "min-occurrences", reports.DefaultMinOccurrences, "Minimum occurrences per payee and currency")
	rootCmd.AddCommand(recurringCmd)
	rootCmd.AddCommand(billsCmd)
}

func runRecurring(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.RecurringExpenses(cmd.Context(), user, flagMinOccurrences)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runBills(cmd *cobra.Command, _ []string) error {
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

	report, err := svc.BillPaymentHistory(cmd.Context(), user, start, end)
	if err != nil {
		return err
	}
	return printJSON(report)
}
