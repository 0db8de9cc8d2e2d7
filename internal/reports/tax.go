package reports

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// deductibleCategories are the display-category names treated as
// potentially tax deductible, matched case-insensitively.
// TODO: make this configurable per user once the preferences schema
// grows a deductible flag.
var deductibleCategories = map[string]bool{
	"charity":   true,
	"donations": true,
	"medical":   true,
	"health":    true,
	"education": true,
	"business":  true,
	"childcare": true,
	"insurance": true,
}

// TaxSummary aggregates one calendar year into the sections a tax
// return cares about: income by source, potentially deductible
// expenses, and all expenses. No top-N truncation applies here.
func (s *Service) TaxSummary(ctx context.Context, userID string, year int) (*TaxReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	incomeRows, err := s.ledger.IncomeByCategory(ctx, userID, &start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch income rows")
	}
	expenseRows, err := s.ledger.SpendingByCategory(ctx, userID, &start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch spending rows")
	}

	income, totalIncome := rankCategoryBuckets(foldCategoryRows(incomeRows, env, index), 0)
	expenses, totalExpenses := rankCategoryBuckets(foldCategoryRows(expenseRows, env, index), 0)

	var deductible []CategorySpend
	var totalDeductible float64
	for _, e := range expenses {
		if deductibleCategories[strings.ToLower(e.CategoryName)] {
			deductible = append(deductible, e)
			totalDeductible += e.Total
		}
	}
	totalDeductible = core.Round2(totalDeductible)

	return &TaxReport{
		Year:               year,
		IncomeBySource:     income,
		DeductibleExpenses: deductible,
		AllExpenses:        expenses,
		Totals: TaxTotals{
			TotalIncome:     totalIncome,
			TotalDeductible: totalDeductible,
			TotalExpenses:   totalExpenses,
		},
	}, nil
}
