package reports

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// DefaultAnomalyThreshold is the z-score cutoff for the
// large-transaction detector.
const DefaultAnomalyThreshold = 2.0

// minAnomalySample gates all three detectors: with fewer qualifying
// expense rows than this, the report is empty rather than noisy.
const minAnomalySample = 10

// spikeBaselineFloor skips category-spike scoring when the previous
// month's total is below this, in units of the display currency.
const spikeBaselineFloor = 50.0

// newPayeeSpendFloor is the trailing-month spend below which a newly
// seen payee is not flagged.
const newPayeeSpendFloor = 100.0

// anomalyRow is one normalized expense: positive magnitude in the
// display currency.
type anomalyRow struct {
	date    time.Time
	payee   string
	amount  float64
	display core.DisplayCategory
}

// SpendingAnomalies flags statistical outliers over the trailing six
// months of expenses using three independent detectors: large
// transaction (z-score), category month-over-month spike, and newly
// seen payee. A threshold <= 0 falls back to DefaultAnomalyThreshold.
func (s *Service) SpendingAnomalies(ctx context.Context, userID string, threshold float64) (*AnomalyReport, error) {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}

	now := s.now()
	start := now.AddDate(0, -6, 0)
	txns, err := s.ledger.ExpenseTransactions(ctx, userID, &start, now)
	if err != nil {
		return nil, errors.Wrap(err, "fetch expense transactions")
	}

	if len(txns) < minAnomalySample {
		return &AnomalyReport{Anomalies: []Anomaly{}}, nil
	}

	rows := make([]anomalyRow, len(txns))
	for i, tx := range txns {
		rows[i] = anomalyRow{
			date:    tx.Date,
			payee:   tx.Payee,
			amount:  env.convert(-tx.Amount, tx.Currency),
			display: core.ResolveDisplay(tx.CategoryID, index),
		}
	}

	mean, stdDev := populationStats(rows)

	anomalies := detectLargeTransactions(rows, mean, stdDev, threshold)
	anomalies = append(anomalies, detectCategorySpikes(rows, now)...)
	anomalies = append(anomalies, detectUnusualPayees(rows, now)...)
	sortAnomalies(anomalies)

	var counts SeverityCounts
	for _, a := range anomalies {
		switch a.Severity {
		case SeverityHigh:
			counts.High++
		case SeverityMedium:
			counts.Medium++
		case SeverityLow:
			counts.Low++
		}
	}

	return &AnomalyReport{
		Statistics: AnomalyStatistics{
			Mean:       core.Round2(mean),
			StdDev:     core.Round2(stdDev),
			SampleSize: len(rows),
		},
		Anomalies: anomalies,
		Counts:    counts,
	}, nil
}

// populationStats computes mean and population standard deviation
// (divide by N, not N-1) over the normalized magnitudes.
func populationStats(rows []anomalyRow) (mean, stdDev float64) {
	n := float64(len(rows))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, r := range rows {
		sum += r.amount
	}
	mean = sum / n
	var sq float64
	for _, r := range rows {
		d := r.amount - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}

func detectLargeTransactions(rows []anomalyRow, mean, stdDev, threshold float64) []Anomaly {
	if stdDev == 0 {
		// Every amount is identical; a z-score cannot single one out.
		return nil
	}
	var out []Anomaly
	for _, r := range rows {
		z := (r.amount - mean) / stdDev
		if z <= threshold {
			continue
		}
		severity := SeverityLow
		switch {
		case z > 2*threshold:
			severity = SeverityHigh
		case z > 1.5*threshold:
			severity = SeverityMedium
		}
		out = append(out, Anomaly{
			Type:         AnomalyLargeTransaction,
			Severity:     severity,
			Amount:       core.Round2(r.amount),
			ZScore:       core.Round2(z),
			Payee:        r.payee,
			Date:         r.date.Format("2006-01-02"),
			CategoryID:   r.display.ID,
			CategoryName: r.display.Name,
		})
	}
	return out
}

func detectCategorySpikes(rows []anomalyRow, now time.Time) []Anomaly {
	curYear, curMonth, _ := now.Date()
	// The last day of the previous month. AddDate(0, -1, 0) would
	// normalize month-end overflow (Jul 31 minus one month is Jul 1)
	// and collapse the two buckets into one.
	prev := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	prevYear, prevMonth, _ := prev.Date()

	type spike struct {
		display  core.DisplayCategory
		current  float64
		previous float64
	}
	buckets := make(map[string]*spike)
	for _, r := range rows {
		y, m, _ := r.date.Date()
		var isCurrent, isPrevious bool
		switch {
		case y == curYear && m == curMonth:
			isCurrent = true
		case y == prevYear && m == prevMonth:
			isPrevious = true
		default:
			continue
		}
		key := bucketKey(r.display.ID)
		b, ok := buckets[key]
		if !ok {
			b = &spike{display: r.display}
			buckets[key] = b
		}
		if isCurrent {
			b.current += r.amount
		} else if isPrevious {
			b.previous += r.amount
		}
	}

	var out []Anomaly
	for _, b := range buckets {
		if b.previous < spikeBaselineFloor {
			continue
		}
		percent := (b.current - b.previous) / b.previous * 100
		if percent <= 100 {
			continue
		}
		severity := SeverityLow
		switch {
		case percent > 300:
			severity = SeverityHigh
		case percent > 200:
			severity = SeverityMedium
		}
		out = append(out, Anomaly{
			Type:          AnomalyCategorySpike,
			Severity:      severity,
			CategoryID:    b.display.ID,
			CategoryName:  b.display.Name,
			PercentChange: core.Round2(percent),
			CurrentTotal:  core.Round2(b.current),
			PreviousTotal: core.Round2(b.previous),
		})
	}
	return out
}

func detectUnusualPayees(rows []anomalyRow, now time.Time) []Anomaly {
	trailing := now.AddDate(0, -1, 0)

	type payee struct {
		name          string
		firstSeen     time.Time
		trailingSpend float64
	}
	buckets := make(map[string]*payee)
	for _, r := range rows {
		key := normalizePayee(r.payee)
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &payee{name: r.payee, firstSeen: r.date}
			buckets[key] = b
		}
		if r.date.Before(b.firstSeen) {
			b.firstSeen = r.date
		}
		if !r.date.Before(trailing) {
			b.trailingSpend += r.amount
		}
	}

	var out []Anomaly
	for _, b := range buckets {
		if b.firstSeen.Before(trailing) {
			continue
		}
		if b.trailingSpend <= newPayeeSpendFloor {
			continue
		}
		severity := SeverityLow
		switch {
		case b.trailingSpend > 500:
			severity = SeverityHigh
		case b.trailingSpend > 200:
			severity = SeverityMedium
		}
		out = append(out, Anomaly{
			Type:      AnomalyUnusualPayee,
			Severity:  severity,
			Amount:    core.Round2(b.trailingSpend),
			Payee:     b.name,
			FirstSeen: b.firstSeen.Format("2006-01-02"),
		})
	}
	return out
}

var severityRank = map[string]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// sortAnomalies orders by severity (high first) then by descending
// amount; anomaly types without an amount sort as zero.
func sortAnomalies(anomalies []Anomaly) {
	sort.SliceStable(anomalies, func(i, j int) bool {
		if severityRank[anomalies[i].Severity] != severityRank[anomalies[j].Severity] {
			return severityRank[anomalies[i].Severity] < severityRank[anomalies[j].Severity]
		}
		return anomalies[i].Amount > anomalies[j].Amount
	})
}
