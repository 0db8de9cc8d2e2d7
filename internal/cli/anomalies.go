package cli

import (
	"github.com/spf13/cobra"

	"finsight/internal/reports"
)

var flagThreshold float64

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Unusual spending over the last six months",
	RunE:  runAnomalies,
}

func init() {
	anomaliesCmd.Flags().Float64Var(&flagThreshold, "threshold", reports.DefaultAnomalyThreshold, "Z-score threshold for the large-transaction detector")
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomalies(cmd *cobra.Command, _ []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	svc, closeSvc, err := openService()
	if err != nil {
		return err
	}
	defer closeSvc()

	report, err := svc.SpendingAnomalies(cmd.Context(), user, flagThreshold)
	if err != nil {
		return err
	}
	return printJSON(report)
}
