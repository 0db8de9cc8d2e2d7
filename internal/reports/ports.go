package reports

import (
	"context"
	"time"

	"finsight/internal/core"
)

// Ports for the read-only collaborators every report consumes. The
// engine never writes through any of these.
type (
	// LedgerReader returns grouped monetary rows and, for the
	// transaction-granular reports, raw expense transactions. All
	// queries already exclude transfers, voided transactions, and
	// investment accounts. A nil start omits the lower date bound
	// entirely.
	LedgerReader interface {
		SpendingByCategory(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error)
		SpendingByPayee(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.PayeeTotalRow, error)
		IncomeByCategory(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error)
		MonthlyCategorySpending(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.MonthCategoryRow, error)
		MonthlyFlows(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.MonthlyFlowRow, error)
		SpendingByWeekday(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.DayCategoryRow, error)
		ExpenseTransactions(ctx context.Context, userID string, start *time.Time, end time.Time) ([]core.TransactionRow, error)
		RecurringCandidates(ctx context.Context, userID string, start time.Time, minOccurrences int) ([]core.RecurringCandidateRow, error)
	}

	// CategoryReader fetches the flat category index for one user.
	CategoryReader interface {
		CategoryIndex(ctx context.Context, userID string) (core.CategoryIndex, error)
	}

	// PreferenceReader resolves the user's default display currency.
	PreferenceReader interface {
		DefaultCurrency(ctx context.Context, userID string) (string, error)
	}

	// RateReader returns the current exchange-rate snapshot.
	RateReader interface {
		RateSnapshot(ctx context.Context) ([]core.RateRow, error)
	}

	// BillScheduleReader returns the user's expected recurring bills.
	BillScheduleReader interface {
		BillTemplates(ctx context.Context, userID string) ([]core.BillTemplate, error)
	}
)
