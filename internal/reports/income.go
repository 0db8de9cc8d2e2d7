package reports

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// IncomeBySource returns the top 15 income categories in the range,
// rolled up one hop like spending.
func (s *Service) IncomeBySource(ctx context.Context, userID string, start *time.Time, end time.Time) (*IncomeReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}
	rows, err := s.ledger.IncomeByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch income rows")
	}

	buckets := foldCategoryRows(rows, env, index)
	data, total := rankCategoryBuckets(buckets, topCategories)

	return &IncomeReport{Data: data, TotalIncome: total}, nil
}

// IncomeVsExpenses compares income and spending per month across the
// range. Months appear only when the ledger has activity in them; the
// totals are the rounded sums of the already-rounded month values.
func (s *Service) IncomeVsExpenses(ctx context.Context, userID string, start *time.Time, end time.Time) (*IncomeVsExpensesReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ledger.MonthlyFlows(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch monthly flows")
	}

	type flow struct{ income, expenses float64 }
	months := make(map[string]*flow)
	for _, row := range rows {
		key := core.MonthKey(time.Date(row.Year, time.Month(row.Month), 1, 0, 0, 0, 0, time.UTC))
		f, ok := months[key]
		if !ok {
			f = &flow{}
			months[key] = f
		}
		f.income += env.convert(row.Income, row.Currency)
		f.expenses += env.convert(row.Expenses, row.Currency)
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var totals FlowTotals
	data := make([]MonthlyFlow, 0, len(keys))
	for _, k := range keys {
		f := months[k]
		income := core.Round2(f.income)
		expenses := core.Round2(f.expenses)
		data = append(data, MonthlyFlow{
			Month:    k,
			Income:   income,
			Expenses: expenses,
			Net:      core.Round2(income - expenses),
		})
		totals.Income += income
		totals.Expenses += expenses
	}
	totals.Income = core.Round2(totals.Income)
	totals.Expenses = core.Round2(totals.Expenses)
	totals.Net = core.Round2(totals.Income - totals.Expenses)

	return &IncomeVsExpensesReport{Data: data, Totals: totals}, nil
}
