// Package reports implements the reporting and analytics engine: it
// turns raw, multi-currency, hierarchically-categorized ledger rows
// into normalized, rolled-up report results.
//
// Every public method is an independent, stateless computation over
// data fetched from the read-only collaborators in ports.go, so
// concurrent calls need no locking and identical inputs produce
// identical output.
package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// Top-N truncation limits, per report.
const (
	topCategories      = 15
	topPayees          = 20
	topTrendCategories = 10
	topDayCategories   = 10
)

// Service answers report queries against a ledger. The zero value is
// not usable; construct with New.
type Service struct {
	ledger LedgerReader
	cats   CategoryReader
	prefs  PreferenceReader
	rates  RateReader
	bills  BillScheduleReader

	// now is swapped out in tests; the trailing-window reports
	// (anomalies, recurring) and yearOverYear anchor on it.
	now func() time.Time
}

// New builds a report service over the given collaborators.
func New(ledger LedgerReader, cats CategoryReader, prefs PreferenceReader, rates RateReader, bills BillScheduleReader) *Service {
	return &Service{
		ledger: ledger,
		cats:   cats,
		prefs:  prefs,
		rates:  rates,
		bills:  bills,
		now:    time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// reportEnv is the per-call environment every report builds exactly
// once: the user's display currency and an immutable rate table.
type reportEnv struct {
	currency string
	rates    core.RateTable
}

func (s *Service) buildEnv(ctx context.Context, userID string) (reportEnv, error) {
	currency, err := s.prefs.DefaultCurrency(ctx, userID)
	if err != nil {
		return reportEnv{}, errors.Wrap(err, "resolve default currency")
	}
	snapshot, err := s.rates.RateSnapshot(ctx)
	if err != nil {
		return reportEnv{}, errors.Wrap(err, "fetch rate snapshot")
	}
	return reportEnv{currency: currency, rates: core.BuildRateTable(snapshot)}, nil
}

// convert normalizes an amount into the user's display currency.
func (e reportEnv) convert(amount float64, from string) float64 {
	return core.Convert(amount, from, e.currency, e.rates)
}

// categoryBucket is the shared fold target for category-keyed reports.
type categoryBucket struct {
	display core.DisplayCategory
	total   float64
}

// bucketKey distinguishes the Uncategorized bucket from real ids.
func bucketKey(id *string) string {
	if id == nil {
		return "\x00uncategorized"
	}
	return *id
}

// foldCategoryRows converts and rolls up grouped category rows into
// display buckets. The returned map is keyed by display category.
func foldCategoryRows(rows []core.CategoryTotalRow, env reportEnv, index core.CategoryIndex) map[string]*categoryBucket {
	buckets := make(map[string]*categoryBucket)
	for _, row := range rows {
		display := core.ResolveDisplay(row.CategoryID, index)
		key := bucketKey(display.ID)
		b, ok := buckets[key]
		if !ok {
			b = &categoryBucket{display: display}
			buckets[key] = b
		}
		b.total += env.convert(row.Total, row.Currency)
	}
	return buckets
}

// rankCategoryBuckets rounds, sorts by total descending, and truncates.
// The returned grand total is the rounded sum of the unrounded bucket
// totals across all buckets, not just the kept ones.
func rankCategoryBuckets(buckets map[string]*categoryBucket, limit int) ([]CategorySpend, float64) {
	var grand float64
	out := make([]CategorySpend, 0, len(buckets))
	for _, b := range buckets {
		grand += b.total
		out = append(out, CategorySpend{
			CategoryID:   b.display.ID,
			CategoryName: b.display.Name,
			Color:        b.display.Color,
			Total:        core.Round2(b.total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, core.Round2(grand)
}

// normalizePayee is the case-insensitive, trimmed payee key shared by
// the recurring classifier, the bill matcher, and the payee detector.
func normalizePayee(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
