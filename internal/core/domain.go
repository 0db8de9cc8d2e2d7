package core

import "time"

// Category is one entry of a user's flat category index. Nesting is at
// most one level deep as far as reporting is concerned: a parent whose
// own ParentID is set is never walked further.
type Category struct {
	ID       string
	ParentID *string
	Name     string
	Color    *string
	IsIncome bool
}

// CategoryIndex maps category id to category, scoped to one user.
type CategoryIndex map[string]Category

// DisplayCategory is the presentation-level category a leaf rolls up
// into. ID and Color are nil for the Uncategorized bucket.
type DisplayCategory struct {
	ID    *string
	Name  string
	Color *string
}

// RateRow is one directed entry of a point-in-time exchange-rate
// snapshot.
type RateRow struct {
	From string
	To   string
	Rate float64
}

// CategoryTotalRow is a grouped ledger row: one per (category,
// currency). CategoryID nil means the transaction carried no category.
type CategoryTotalRow struct {
	CategoryID *string
	Currency   string
	Total      float64
}

// PayeeTotalRow is a grouped ledger row: one per (payee, currency).
type PayeeTotalRow struct {
	PayeeID  *string
	Payee    string
	Currency string
	Total    float64
}

// MonthCategoryRow is a grouped ledger row: one per (month, category,
// currency). Month is formatted "2006-01".
type MonthCategoryRow struct {
	Month      string
	CategoryID *string
	Currency   string
	Total      float64
}

// MonthlyFlowRow is a grouped ledger row: one per (year, month,
// currency). Income and Expenses are both positive magnitudes.
type MonthlyFlowRow struct {
	Year     int
	Month    int
	Currency string
	Income   float64
	Expenses float64
}

// DayCategoryRow is a grouped ledger row: one per (weekday, category,
// currency). Weekday is 0 (Sunday) through 6 (Saturday).
type DayCategoryRow struct {
	Weekday    int
	CategoryID *string
	Currency   string
	Total      float64
}

// TransactionRow is a single ledger transaction. Amount keeps the
// ledger sign convention: negative is an expense, positive income.
type TransactionRow struct {
	ID         int64
	Date       time.Time
	Payee      string
	Amount     float64
	Currency   string
	CategoryID *string
}

// RecurringCandidateRow is a store-side grouping of expense
// transactions by (payee, currency). The minimum-occurrence filter has
// already been applied per currency by the store.
type RecurringCandidateRow struct {
	Payee       string
	Currency    string
	Occurrences int
	Total       float64
	FirstDate   time.Time
	LastDate    time.Time
}

// BillTemplate describes an expected recurring bill. ExpectedAmount is
// an absolute value in the template's own terms.
type BillTemplate struct {
	ID             int64
	Name           string
	PayeeName      string
	ExpectedAmount float64
}

// MonthKey formats a time as the "2006-01" bucket key used by every
// month-pivoted report.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
