// Package export writes finished reports to external destinations.
// Currently that means pushing a yearly tax summary to Google Sheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"finsight/internal/reports"
)

// SheetsExporter writes tax summaries to one tab per year of a Google
// spreadsheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

// NewSheetsExporter builds an exporter for the given spreadsheet.
// sheetBase names the target tab without the year suffix; "Tax" writes
// to "Tax 2024" and so on. Credentials come from the environment.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetBase string) (*SheetsExporter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetBase) == "" {
		sheetBase = "Tax"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

// newSheetsService initializes a Sheets service from service-account
// credentials. Accepts GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// ExportTaxReport replaces the year's tab contents with the given
// summary and returns the written range.
func (e *SheetsExporter) ExportTaxReport(ctx context.Context, report *reports.TaxReport) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	if report == nil {
		return "", errors.New("nil tax report")
	}

	tab := fmt.Sprintf("%s %d", e.sheetBase, report.Year)
	values := taxReportRows(report)

	clearRange := fmt.Sprintf("%s!A:Z", tab)
	if _, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", tab, err)
	}

	writeRange := fmt.Sprintf("%s!A1", tab)
	vr := &gsheet.ValueRange{Values: values}
	if _, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write sheet %s: %w", tab, err)
	}

	ref := fmt.Sprintf("%s!A1:B%d", tab, len(values))
	slog.InfoContext(ctx, "Exported tax summary",
		"year", report.Year,
		"sheet", tab,
		"rows", len(values))

	return ref, nil
}

// taxReportRows lays the report out as labelled sections with a name
// and amount column each.
func taxReportRows(report *reports.TaxReport) [][]any {
	rows := [][]any{
		{"Tax Summary", report.Year},
		{},
	}

	section := func(title string, entries []reports.CategorySpend) {
		rows = append(rows, []any{title}, []any{"Category", "Total"})
		for _, entry := range entries {
			rows = append(rows, []any{entry.CategoryName, entry.Total})
		}
		rows = append(rows, []any{})
	}

	section("Income by Source", report.IncomeBySource)
	section("Deductible Expenses", report.DeductibleExpenses)
	section("All Expenses", report.AllExpenses)

	rows = append(rows,
		[]any{"Totals"},
		[]any{"Total Income", report.Totals.TotalIncome},
		[]any{"Total Deductible", report.Totals.TotalDeductible},
		[]any{"Total Expenses", report.Totals.TotalExpenses},
	)

	return rows
}
