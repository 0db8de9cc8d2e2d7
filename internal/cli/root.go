package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"finsight/internal/config"
	"finsight/internal/reports"
	"finsight/internal/storage"
)

const dateFlagLayout = "2006-01-02"

var (
	flagDB    string
	flagUser  string
	flagStart string
	flagEnd   string
)

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Personal-finance reporting CLI",
	Long:  "Run reports over a local transaction ledger: spending, cashflow, anomalies, recurring expenses, and more.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (defaults to FINSIGHT_DB_PATH)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User whose ledger to report on")
	rootCmd.PersistentFlags().StringVar(&flagStart, "start", "", "Report window start (YYYY-MM-DD, omit for all history)")
	rootCmd.PersistentFlags().StringVar(&flagEnd, "end", "", "Report window end (YYYY-MM-DD, defaults to today)")
}

// openService is the shared setup path used by all report commands.
func openService() (*reports.Service, func(), error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	dbPath := cfg.DBPath
	if flagDB != "" {
		dbPath = flagDB
	}

	repo, err := storage.NewLedgerRepository(dbPath, cfg.DefaultCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger: %w", err)
	}

	svc := reports.New(repo, repo, repo, repo, repo)
	return svc, func() { repo.Close() }, nil
}

// requireUser validates the --user flag every report command needs.
func requireUser() (string, error) {
	if flagUser == "" {
		return "", fmt.Errorf("--user is required")
	}
	return flagUser, nil
}

// reportWindow parses the --start/--end flags. A missing start leaves
// the lower bound open; a missing end means now.
func reportWindow() (*time.Time, time.Time, error) {
	end := time.Now()
	if flagEnd != "" {
		parsed, err := time.Parse(dateFlagLayout, flagEnd)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid --end %q: %w", flagEnd, err)
		}
		end = parsed
	}

	var start *time.Time
	if flagStart != "" {
		parsed, err := time.Parse(dateFlagLayout, flagStart)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid --start %q: %w", flagStart, err)
		}
		start = &parsed
	}

	if start != nil && start.After(end) {
		return nil, time.Time{}, fmt.Errorf("--start %s is after --end %s", flagStart, end.Format(dateFlagLayout))
	}

	return start, end, nil
}

// printJSON writes a report result to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
