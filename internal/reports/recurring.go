package reports

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// DefaultMinOccurrences is the store-side per-currency occurrence
// floor for recurring candidates.
const DefaultMinOccurrences = 3

// recurringWindowMonths is the trailing window recurring groups are
// classified over, and the divisor of the monthly estimate.
const recurringWindowMonths = 6

// classifyFrequency maps a merged occurrence count over the six-month
// window to its recurrence label.
func classifyFrequency(occurrences int) string {
	switch {
	case occurrences >= 24:
		return FrequencyWeekly
	case occurrences >= 12:
		return FrequencyBiweekly
	case occurrences >= 5:
		return FrequencyMonthly
	case occurrences >= 3:
		return FrequencyOccasional
	default:
		return FrequencyIrregular
	}
}

// RecurringExpenses classifies trailing-six-month expense activity by
// payee into recurrence frequencies.
//
// The store applies the minimum-occurrence filter per (payee, currency)
// group before this method merges currencies case-insensitively, so a
// payee split across currencies below the per-currency floor never
// appears even if its merged count would qualify. That ordering is a
// user-visible contract and is kept on purpose.
func (s *Service) RecurringExpenses(ctx context.Context, userID string, minOccurrences int) (*RecurringReport, error) {
	if minOccurrences <= 0 {
		minOccurrences = DefaultMinOccurrences
	}
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}

	start := s.now().AddDate(0, -recurringWindowMonths, 0)
	rows, err := s.ledger.RecurringCandidates(ctx, userID, start, minOccurrences)
	if err != nil {
		return nil, errors.Wrap(err, "fetch recurring candidates")
	}

	type group struct {
		name        string
		occurrences int
		total       float64
		last        string
	}
	groups := make(map[string]*group)
	for _, row := range rows {
		key := normalizePayee(row.Payee)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{name: row.Payee}
			groups[key] = g
		}
		g.occurrences += row.Occurrences
		g.total += env.convert(row.Total, row.Currency)
		if last := row.LastDate.Format("2006-01-02"); last > g.last {
			g.last = last
		}
	}

	var totalRecurring float64
	data := make([]RecurringExpense, 0, len(groups))
	for _, g := range groups {
		totalRecurring += g.total
		avg := 0.0
		if g.occurrences > 0 {
			avg = g.total / float64(g.occurrences)
		}
		data = append(data, RecurringExpense{
			Payee:         g.name,
			Frequency:     classifyFrequency(g.occurrences),
			Occurrences:   g.occurrences,
			Total:         core.Round2(g.total),
			AverageAmount: core.Round2(avg),
			LastDate:      g.last,
		})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Total != data[j].Total {
			return data[i].Total > data[j].Total
		}
		return data[i].Payee < data[j].Payee
	})

	return &RecurringReport{
		Data: data,
		Summary: RecurringSummary{
			TotalRecurring:  core.Round2(totalRecurring),
			MonthlyEstimate: core.Round2(totalRecurring / recurringWindowMonths),
			Count:           len(data),
		},
	}, nil
}
