package reports

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// MonthlySpendingTrend pivots spending by month and display category.
// The category axis is limited to the 10 categories with the highest
// spending across the whole range; each month's totalSpending still
// covers every category, as the rounded sum of the rounded per-category
// values.
func (s *Service) MonthlySpendingTrend(ctx context.Context, userID string, start *time.Time, end time.Time) (*MonthlyTrendReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}
	rows, err := s.ledger.MonthlyCategorySpending(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch trend rows")
	}

	// month -> display bucket key -> accumulated spend
	type cell struct {
		display core.DisplayCategory
		total   float64
	}
	months := make(map[string]map[string]*cell)
	globalTotals := make(map[string]float64)
	for _, row := range rows {
		display := core.ResolveDisplay(row.CategoryID, index)
		key := bucketKey(display.ID)
		converted := env.convert(row.Total, row.Currency)

		cells, ok := months[row.Month]
		if !ok {
			cells = make(map[string]*cell)
			months[row.Month] = cells
		}
		c, ok := cells[key]
		if !ok {
			c = &cell{display: display}
			cells[key] = c
		}
		c.total += converted
		globalTotals[key] += converted
	}

	// Pick the top categories across the whole range.
	keys := make([]string, 0, len(globalTotals))
	for k := range globalTotals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if globalTotals[keys[i]] != globalTotals[keys[j]] {
			return globalTotals[keys[i]] > globalTotals[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > topTrendCategories {
		keys = keys[:topTrendCategories]
	}
	kept := make(map[string]bool, len(keys))
	for _, k := range keys {
		kept[k] = true
	}

	monthKeys := make([]string, 0, len(months))
	for m := range months {
		monthKeys = append(monthKeys, m)
	}
	sort.Strings(monthKeys)

	data := make([]MonthSpending, 0, len(monthKeys))
	for _, m := range monthKeys {
		entry := MonthSpending{Month: m}
		var monthTotal float64
		for key, c := range months[m] {
			rounded := core.Round2(c.total)
			monthTotal += rounded
			if !kept[key] {
				continue
			}
			entry.Categories = append(entry.Categories, CategorySpend{
				CategoryID:   c.display.ID,
				CategoryName: c.display.Name,
				Color:        c.display.Color,
				Total:        rounded,
			})
		}
		sort.Slice(entry.Categories, func(i, j int) bool {
			if entry.Categories[i].Total != entry.Categories[j].Total {
				return entry.Categories[i].Total > entry.Categories[j].Total
			}
			return entry.Categories[i].CategoryName < entry.Categories[j].CategoryName
		})
		entry.TotalSpending = core.Round2(monthTotal)
		data = append(data, entry)
	}

	return &MonthlyTrendReport{Data: data}, nil
}
