package reports

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

var weekdayLabels = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func isWeekend(day int) bool {
	return day == 0 || day == 6
}

// WeekendVsWeekday partitions spending by day of week. ByDay always has
// exactly 7 entries indexed 0 (Sunday) through 6 (Saturday); Saturday
// and Sunday feed the weekend side of the summary, the rest the
// weekday side. ByCategory keeps the top 10 display categories by
// combined spending.
func (s *Service) WeekendVsWeekday(ctx context.Context, userID string, start *time.Time, end time.Time) (*WeekendVsWeekdayReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}
	rows, err := s.ledger.SpendingByWeekday(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch weekday rows")
	}

	var dayTotals [7]float64
	type split struct {
		display core.DisplayCategory
		weekend float64
		weekday float64
	}
	byCategory := make(map[string]*split)
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			continue
		}
		converted := env.convert(row.Total, row.Currency)
		dayTotals[row.Weekday] += converted

		display := core.ResolveDisplay(row.CategoryID, index)
		key := bucketKey(display.ID)
		c, ok := byCategory[key]
		if !ok {
			c = &split{display: display}
			byCategory[key] = c
		}
		if isWeekend(row.Weekday) {
			c.weekend += converted
		} else {
			c.weekday += converted
		}
	}

	byDay := make([]DaySpend, 7)
	var weekendTotal, weekdayTotal float64
	for d := 0; d < 7; d++ {
		rounded := core.Round2(dayTotals[d])
		byDay[d] = DaySpend{Weekday: d, Label: weekdayLabels[d], Total: rounded}
		if isWeekend(d) {
			weekendTotal += rounded
		} else {
			weekdayTotal += rounded
		}
	}
	weekendTotal = core.Round2(weekendTotal)
	weekdayTotal = core.Round2(weekdayTotal)

	cats := make([]WeekendCategorySpend, 0, len(byCategory))
	for _, c := range byCategory {
		weekend := core.Round2(c.weekend)
		weekday := core.Round2(c.weekday)
		cats = append(cats, WeekendCategorySpend{
			CategoryID:   c.display.ID,
			CategoryName: c.display.Name,
			WeekendTotal: weekend,
			WeekdayTotal: weekday,
			Total:        core.Round2(weekend + weekday),
		})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Total != cats[j].Total {
			return cats[i].Total > cats[j].Total
		}
		return cats[i].CategoryName < cats[j].CategoryName
	})
	if len(cats) > topDayCategories {
		cats = cats[:topDayCategories]
	}

	return &WeekendVsWeekdayReport{
		Summary: WeekendSummary{
			WeekendTotal:        weekendTotal,
			WeekdayTotal:        weekdayTotal,
			WeekendDailyAverage: core.Round2(weekendTotal / 2),
			WeekdayDailyAverage: core.Round2(weekdayTotal / 5),
		},
		ByDay:      byDay,
		ByCategory: cats,
	}, nil
}
