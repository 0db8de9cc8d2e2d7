package reports

// Report result types. Everything here is a plain JSON-serializable
// value created fresh per call and never persisted.

// CategorySpend is one display-category bucket of a spending or income
// report. CategoryID and Color are null for the Uncategorized bucket.
type CategorySpend struct {
	CategoryID   *string `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Color        *string `json:"color"`
	Total        float64 `json:"total"`
}

// CategorySpendingReport is the spendingByCategory result (top 15).
type CategorySpendingReport struct {
	Data          []CategorySpend `json:"data"`
	TotalSpending float64         `json:"totalSpending"`
}

// PayeeSpend is one payee bucket of the spendingByPayee report.
type PayeeSpend struct {
	PayeeID   *string `json:"payeeId"`
	PayeeName string  `json:"payeeName"`
	Total     float64 `json:"total"`
}

// PayeeSpendingReport is the spendingByPayee result (top 20).
type PayeeSpendingReport struct {
	Data          []PayeeSpend `json:"data"`
	TotalSpending float64      `json:"totalSpending"`
}

// MonthSpending is one month of the spending trend, limited to the
// globally top-10 display categories.
type MonthSpending struct {
	Month         string          `json:"month"`
	Categories    []CategorySpend `json:"categories"`
	TotalSpending float64         `json:"totalSpending"`
}

// MonthlyTrendReport is the monthlySpendingTrend result.
type MonthlyTrendReport struct {
	Data []MonthSpending `json:"data"`
}

// IncomeReport is the incomeBySource result (top 15 income categories).
type IncomeReport struct {
	Data        []CategorySpend `json:"data"`
	TotalIncome float64         `json:"totalIncome"`
}

// MonthlyFlow is one month of the income-vs-expenses comparison.
type MonthlyFlow struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// FlowTotals sums a set of monthly flows.
type FlowTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// IncomeVsExpensesReport is the incomeVsExpenses result.
type IncomeVsExpensesReport struct {
	Data   []MonthlyFlow `json:"data"`
	Totals FlowTotals    `json:"totals"`
}

// MonthComparison is one pre-populated month of a year-over-year row.
type MonthComparison struct {
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// YearTotals sums a full year.
type YearTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// YearComparison is one dense-filled year: always exactly 12 months.
type YearComparison struct {
	Year   int               `json:"year"`
	Months []MonthComparison `json:"months"`
	Totals YearTotals        `json:"totals"`
}

// YearOverYearReport is the yearOverYear result.
type YearOverYearReport struct {
	Data []YearComparison `json:"data"`
}

// DaySpend is one weekday bucket; Weekday 0 is Sunday, 6 Saturday.
type DaySpend struct {
	Weekday int     `json:"weekday"`
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
}

// WeekendCategorySpend splits one display category's spending across
// weekend and weekday.
type WeekendCategorySpend struct {
	CategoryID   *string `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	WeekendTotal float64 `json:"weekendTotal"`
	WeekdayTotal float64 `json:"weekdayTotal"`
	Total        float64 `json:"total"`
}

// WeekendSummary compares weekend and weekday spending.
type WeekendSummary struct {
	WeekendTotal        float64 `json:"weekendTotal"`
	WeekdayTotal        float64 `json:"weekdayTotal"`
	WeekendDailyAverage float64 `json:"weekendDailyAverage"`
	WeekdayDailyAverage float64 `json:"weekdayDailyAverage"`
}

// WeekendVsWeekdayReport is the weekendVsWeekday result. ByDay always
// has exactly 7 entries indexed 0-6.
type WeekendVsWeekdayReport struct {
	Summary    WeekendSummary         `json:"summary"`
	ByDay      []DaySpend             `json:"byDay"`
	ByCategory []WeekendCategorySpend `json:"byCategory"`
}

// Anomaly severity tiers, ordered high before medium before low.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Anomaly types.
const (
	AnomalyLargeTransaction = "large_transaction"
	AnomalyCategorySpike    = "category_spike"
	AnomalyUnusualPayee     = "unusual_payee"
)

// Anomaly is one flagged outlier. Fields are populated per type:
// large_transaction carries Amount/ZScore/Payee/Date, category_spike
// carries PercentChange and the month totals, unusual_payee carries
// Amount and FirstSeen.
type Anomaly struct {
	Type          string  `json:"type"`
	Severity      string  `json:"severity"`
	Amount        float64 `json:"amount,omitempty"`
	ZScore        float64 `json:"zScore,omitempty"`
	Payee         string  `json:"payee,omitempty"`
	Date          string  `json:"date,omitempty"`
	CategoryID    *string `json:"categoryId,omitempty"`
	CategoryName  string  `json:"categoryName,omitempty"`
	PercentChange float64 `json:"percentChange,omitempty"`
	CurrentTotal  float64 `json:"currentTotal,omitempty"`
	PreviousTotal float64 `json:"previousTotal,omitempty"`
	FirstSeen     string  `json:"firstSeen,omitempty"`
}

// AnomalyStatistics describes the population the z-score detector ran
// against.
type AnomalyStatistics struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stdDev"`
	SampleSize int     `json:"sampleSize"`
}

// SeverityCounts tallies anomalies per tier.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AnomalyReport is the spendingAnomalies result.
type AnomalyReport struct {
	Statistics AnomalyStatistics `json:"statistics"`
	Anomalies  []Anomaly         `json:"anomalies"`
	Counts     SeverityCounts    `json:"counts"`
}

// Recurrence frequency labels.
const (
	FrequencyWeekly     = "Weekly"
	FrequencyBiweekly   = "Bi-weekly"
	FrequencyMonthly    = "Monthly"
	FrequencyOccasional = "Occasional"
	FrequencyIrregular  = "Irregular"
)

// RecurringExpense is one classified payee group.
type RecurringExpense struct {
	Payee         string  `json:"payee"`
	Frequency     string  `json:"frequency"`
	Occurrences   int     `json:"occurrences"`
	Total         float64 `json:"total"`
	AverageAmount float64 `json:"averageAmount"`
	LastDate      string  `json:"lastDate"`
}

// RecurringSummary sums the classified groups over the 6-month window.
type RecurringSummary struct {
	TotalRecurring  float64 `json:"totalRecurring"`
	MonthlyEstimate float64 `json:"monthlyEstimate"`
	Count           int     `json:"count"`
}

// RecurringReport is the recurringExpenses result.
type RecurringReport struct {
	Data    []RecurringExpense `json:"data"`
	Summary RecurringSummary   `json:"summary"`
}

// BillPaymentSummary aggregates matched payments for one template.
type BillPaymentSummary struct {
	BillID          int64   `json:"billId"`
	Name            string  `json:"name"`
	PayeeName       string  `json:"payeeName"`
	ExpectedAmount  float64 `json:"expectedAmount"`
	Payments        int     `json:"payments"`
	TotalPaid       float64 `json:"totalPaid"`
	AveragePaid     float64 `json:"averagePaid"`
	LastPaymentDate string  `json:"lastPaymentDate,omitempty"`
}

// MonthTotal is one month bucket of the bill-payment trend.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// BillSummary sums matched payments across all templates.
type BillSummary struct {
	TotalPaid      float64 `json:"totalPaid"`
	MonthlyAverage float64 `json:"monthlyAverage"`
	MonthsCovered  int     `json:"monthsCovered"`
}

// BillPaymentReport is the billPaymentHistory result.
type BillPaymentReport struct {
	BillPayments  []BillPaymentSummary `json:"billPayments"`
	MonthlyTotals []MonthTotal         `json:"monthlyTotals"`
	Summary       BillSummary          `json:"summary"`
}

// TaxTotals sums the three tax-summary sections.
type TaxTotals struct {
	TotalIncome     float64 `json:"totalIncome"`
	TotalDeductible float64 `json:"totalDeductible"`
	TotalExpenses   float64 `json:"totalExpenses"`
}

// TaxReport is the taxSummary result for one calendar year.
type TaxReport struct {
	Year               int             `json:"year"`
	IncomeBySource     []CategorySpend `json:"incomeBySource"`
	DeductibleExpenses []CategorySpend `json:"deductibleExpenses"`
	AllExpenses        []CategorySpend `json:"allExpenses"`
	Totals             TaxTotals       `json:"totals"`
}

// ReportDigest bundles the reports computed for one digest request.
type ReportDigest struct {
	Spending  *CategorySpendingReport `json:"spending,omitempty"`
	Cashflow  *IncomeVsExpensesReport `json:"cashflow,omitempty"`
	Anomalies *AnomalyReport          `json:"anomalies,omitempty"`
	Recurring *RecurringReport        `json:"recurring,omitempty"`
}
