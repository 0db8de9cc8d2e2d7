// Package storage implements the ledger store over SQLite. It is the
// read side the reporting engine consumes: grouped monetary rows,
// the category index, rate snapshots, preferences, and bill templates.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finsight/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// LedgerRepository serves read-only report queries from SQLite. Every
// report query excludes transfers, voided transactions, and
// investment-account activity.
type LedgerRepository struct {
	db               *sql.DB
	fallbackCurrency string
}

// NewLedgerRepository opens (and migrates) the ledger database.
// fallbackCurrency is returned for users without a stored preference.
func NewLedgerRepository(dbPath, fallbackCurrency string) (*LedgerRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("Ledger database ready", "path", dbPath)

	return &LedgerRepository{db: db, fallbackCurrency: fallbackCurrency}, nil
}

func (r *LedgerRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// reportFilter builds the WHERE clause shared by every report query.
// When start is nil the lower date bound is omitted entirely rather
// than substituted with a sentinel.
func reportFilter(userID string, start *time.Time, end time.Time) (string, []any) {
	clauses := []string{
		"t.user_id = ?",
		"t.is_transfer = 0",
		"t.is_void = 0",
		"COALESCE(a.is_investment, 0) = 0",
		"t.date <= ?",
	}
	args := []any{userID, end.Format(dateLayout)}
	if start != nil {
		clauses = append(clauses, "t.date >= ?")
		args = append(args, start.Format(dateLayout))
	}
	return strings.Join(clauses, " AND "), args
}

const fromTransactions = "FROM transactions t LEFT JOIN accounts a ON a.id = t.account_id"

// SpendingByCategory returns expense totals per (category, currency)
// as positive magnitudes.
func (r *LedgerRepository) SpendingByCategory(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT t.category_id, t.currency, SUM(-t.amount) AS total
		%s
		WHERE %s AND t.amount < 0
		GROUP BY t.category_id, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spending by category: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryTotalRow
	for rows.Next() {
		var row core.CategoryTotalRow
		var categoryID sql.NullString
		if err := rows.Scan(&categoryID, &row.Currency, &row.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		row.CategoryID = nullableString(categoryID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// IncomeByCategory returns income totals per (category, currency).
func (r *LedgerRepository) IncomeByCategory(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT t.category_id, t.currency, SUM(t.amount) AS total
		%s
		WHERE %s AND t.amount > 0
		GROUP BY t.category_id, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query income by category: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryTotalRow
	for rows.Next() {
		var row core.CategoryTotalRow
		var categoryID sql.NullString
		if err := rows.Scan(&categoryID, &row.Currency, &row.Total); err != nil {
			return nil, fmt.Errorf("scan income total: %w", err)
		}
		row.CategoryID = nullableString(categoryID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// SpendingByPayee returns expense totals per (payee, currency).
func (r *LedgerRepository) SpendingByPayee(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.PayeeTotalRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT t.payee_id, t.payee, t.currency, SUM(-t.amount) AS total
		%s
		WHERE %s AND t.amount < 0
		GROUP BY t.payee_id, t.payee, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spending by payee: %w", err)
	}
	defer rows.Close()

	var out []core.PayeeTotalRow
	for rows.Next() {
		var row core.PayeeTotalRow
		var payeeID sql.NullString
		if err := rows.Scan(&payeeID, &row.Payee, &row.Currency, &row.Total); err != nil {
			return nil, fmt.Errorf("scan payee total: %w", err)
		}
		row.PayeeID = nullableString(payeeID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// MonthlyCategorySpending returns expense totals per (month, category,
// currency), with months formatted "2006-01".
func (r *LedgerRepository) MonthlyCategorySpending(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.MonthCategoryRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT strftime('%%Y-%%m', t.date) AS month, t.category_id, t.currency, SUM(-t.amount) AS total
		%s
		WHERE %s AND t.amount < 0
		GROUP BY month, t.category_id, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query monthly category spending: %w", err)
	}
	defer rows.Close()

	var out []core.MonthCategoryRow
	for rows.Next() {
		var row core.MonthCategoryRow
		var categoryID sql.NullString
		if err := rows.Scan(&row.Month, &categoryID, &row.Currency, &row.Total); err != nil {
			return nil, fmt.Errorf("scan month category total: %w", err)
		}
		row.CategoryID = nullableString(categoryID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// MonthlyFlows returns income and expense magnitudes per (year, month,
// currency).
func (r *LedgerRepository) MonthlyFlows(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.MonthlyFlowRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT CAST(strftime('%%Y', t.date) AS INTEGER) AS year,
		       CAST(strftime('%%m', t.date) AS INTEGER) AS month,
		       t.currency,
		       SUM(CASE WHEN t.amount > 0 THEN t.amount ELSE 0 END) AS income,
		       SUM(CASE WHEN t.amount < 0 THEN -t.amount ELSE 0 END) AS expenses
		%s
		WHERE %s
		GROUP BY year, month, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query monthly flows: %w", err)
	}
	defer rows.Close()

	var out []core.MonthlyFlowRow
	for rows.Next() {
		var row core.MonthlyFlowRow
		if err := rows.Scan(&row.Year, &row.Month, &row.Currency, &row.Income, &row.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly flow: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SpendingByWeekday returns expense totals per (day of week, category,
// currency); day 0 is Sunday, matching strftime('%w').
func (r *LedgerRepository) SpendingByWeekday(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.DayCategoryRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT CAST(strftime('%%w', t.date) AS INTEGER) AS weekday, t.category_id, t.currency, SUM(-t.amount) AS total
		%s
		WHERE %s AND t.amount < 0
		GROUP BY weekday, t.category_id, t.currency`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spending by weekday: %w", err)
	}
	defer rows.Close()

	var out []core.DayCategoryRow
	for rows.Next() {
		var row core.DayCategoryRow
		var categoryID sql.NullString
		if err := rows.Scan(&row.Weekday, &categoryID, &row.Currency, &row.Total); err != nil {
			return nil, fmt.Errorf("scan weekday total: %w", err)
		}
		row.CategoryID = nullableString(categoryID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ExpenseTransactions returns individual expense transactions for the
// transaction-granular reports (anomalies, bill matching).
func (r *LedgerRepository) ExpenseTransactions(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.TransactionRow, error) {
	where, args := reportFilter(userID, start, end)
	query := fmt.Sprintf(`
		SELECT t.id, t.date, t.payee, t.amount, t.currency, t.category_id
		%s
		WHERE %s AND t.amount < 0
		ORDER BY t.date, t.id`, fromTransactions, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expense transactions: %w", err)
	}
	defer rows.Close()

	var out []core.TransactionRow
	for rows.Next() {
		var row core.TransactionRow
		var date string
		var categoryID sql.NullString
		if err := rows.Scan(&row.ID, &date, &row.Payee, &row.Amount, &row.Currency, &categoryID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
		row.Date = parsed
		row.CategoryID = nullableString(categoryID)
		out = append(out, row)
	}
	return out, rows.Err()
}

// RecurringCandidates groups trailing-window expenses by (payee,
// currency), applying the minimum-occurrence filter per currency group
// before any cross-currency merge happens upstream. Blank payees are
// excluded.
func (r *LedgerRepository) RecurringCandidates(ctx context.Context, userID string, start time.Time, minOccurrences int) ([]core.RecurringCandidateRow, error) {
	query := fmt.Sprintf(`
		SELECT t.payee, t.currency, COUNT(*) AS occurrences, SUM(-t.amount) AS total,
		       MIN(t.date) AS first_date, MAX(t.date) AS last_date
		%s
		WHERE t.user_id = ? AND t.is_transfer = 0 AND t.is_void = 0
		  AND COALESCE(a.is_investment, 0) = 0
		  AND t.amount < 0 AND TRIM(t.payee) <> '' AND t.date >= ?
		GROUP BY t.payee, t.currency
		HAVING COUNT(*) >= ?`, fromTransactions)

	rows, err := r.db.QueryContext(ctx, query, userID, start.Format(dateLayout), minOccurrences)
	if err != nil {
		return nil, fmt.Errorf("query recurring candidates: %w", err)
	}
	defer rows.Close()

	var out []core.RecurringCandidateRow
	for rows.Next() {
		var row core.RecurringCandidateRow
		var first, last string
		if err := rows.Scan(&row.Payee, &row.Currency, &row.Occurrences, &row.Total, &first, &last); err != nil {
			return nil, fmt.Errorf("scan recurring candidate: %w", err)
		}
		if row.FirstDate, err = time.Parse(dateLayout, first); err != nil {
			return nil, fmt.Errorf("parse first date %q: %w", first, err)
		}
		if row.LastDate, err = time.Parse(dateLayout, last); err != nil {
			return nil, fmt.Errorf("parse last date %q: %w", last, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// CategoryIndex returns the user's flat category index.
func (r *LedgerRepository) CategoryIndex(ctx context.Context, userID string) (core.CategoryIndex, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_id, name, color, is_income FROM categories WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	index := make(core.CategoryIndex)
	for rows.Next() {
		var cat core.Category
		var parentID, color sql.NullString
		if err := rows.Scan(&cat.ID, &parentID, &cat.Name, &color, &cat.IsIncome); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.ParentID = nullableString(parentID)
		cat.Color = nullableString(color)
		index[cat.ID] = cat
	}
	return index, rows.Err()
}

// DefaultCurrency returns the user's preferred display currency,
// falling back to the repository-wide default when no preference is
// stored.
func (r *LedgerRepository) DefaultCurrency(ctx context.Context, userID string) (string, error) {
	var currency string
	err := r.db.QueryRowContext(ctx,
		`SELECT default_currency FROM user_preferences WHERE user_id = ?`, userID).Scan(&currency)
	if errors.Is(err, sql.ErrNoRows) {
		return r.fallbackCurrency, nil
	}
	if err != nil {
		return "", fmt.Errorf("query default currency: %w", err)
	}
	return currency, nil
}

// RateSnapshot returns the current exchange-rate table contents.
func (r *LedgerRepository) RateSnapshot(ctx context.Context) ([]core.RateRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT from_currency, to_currency, rate FROM exchange_rates`)
	if err != nil {
		return nil, fmt.Errorf("query exchange rates: %w", err)
	}
	defer rows.Close()

	var out []core.RateRow
	for rows.Next() {
		var row core.RateRow
		if err := rows.Scan(&row.From, &row.To, &row.Rate); err != nil {
			return nil, fmt.Errorf("scan exchange rate: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// BillTemplates returns the user's expected recurring bills.
func (r *LedgerRepository) BillTemplates(ctx context.Context, userID string) ([]core.BillTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, payee, expected_amount FROM scheduled_bills WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query scheduled bills: %w", err)
	}
	defer rows.Close()

	var out []core.BillTemplate
	for rows.Next() {
		var row core.BillTemplate
		if err := rows.Scan(&row.ID, &row.Name, &row.PayeeName, &row.ExpectedAmount); err != nil {
			return nil, fmt.Errorf("scan bill template: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
