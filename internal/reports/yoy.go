package reports

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// YearOverYear compares income, expenses, and savings across the last
// yearsToCompare calendar years, current year included.
//
// The result is always dense: every requested year carries exactly 12
// months, pre-populated with zeros before any ledger row is applied, so
// empty years and months still appear as {0, 0, 0}.
func (s *Service) YearOverYear(ctx context.Context, userID string, yearsToCompare int) (*YearOverYearReport, error) {
	if yearsToCompare < 1 {
		yearsToCompare = 1
	}
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}

	currentYear := s.now().Year()
	firstYear := currentYear - yearsToCompare + 1
	start := time.Date(firstYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(currentYear, time.December, 31, 23, 59, 59, 0, time.UTC)

	rows, err := s.ledger.MonthlyFlows(ctx, userID, &start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch monthly flows")
	}

	type flow struct{ income, expenses float64 }
	acc := make(map[int]*[12]flow, yearsToCompare)
	for y := firstYear; y <= currentYear; y++ {
		acc[y] = &[12]flow{}
	}
	for _, row := range rows {
		months, ok := acc[row.Year]
		if !ok || row.Month < 1 || row.Month > 12 {
			continue
		}
		f := &months[row.Month-1]
		f.income += env.convert(row.Income, row.Currency)
		f.expenses += env.convert(row.Expenses, row.Currency)
	}

	data := make([]YearComparison, 0, yearsToCompare)
	for y := firstYear; y <= currentYear; y++ {
		yc := YearComparison{Year: y, Months: make([]MonthComparison, 12)}
		var income, expenses float64
		for m := 0; m < 12; m++ {
			f := acc[y][m]
			income += f.income
			expenses += f.expenses
			mIncome := core.Round2(f.income)
			mExpenses := core.Round2(f.expenses)
			yc.Months[m] = MonthComparison{
				Month:    m + 1,
				Income:   mIncome,
				Expenses: mExpenses,
				Savings:  core.Round2(mIncome - mExpenses),
			}
		}
		// Year totals are sum-then-round over the unrounded months.
		yc.Totals = YearTotals{
			Income:   core.Round2(income),
			Expenses: core.Round2(expenses),
			Savings:  core.Round2(income - expenses),
		}
		data = append(data, yc)
	}

	return &YearOverYearReport{Data: data}, nil
}
