package reports

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// SpendingByCategory returns the top 15 display categories by spending
// in the range, with child categories merged into their parents.
func (s *Service) SpendingByCategory(ctx context.Context, userID string, start *time.Time, end time.Time) (*CategorySpendingReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	index, err := s.cats.CategoryIndex(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch category index")
	}
	rows, err := s.ledger.SpendingByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch spending rows")
	}

	buckets := foldCategoryRows(rows, env, index)
	data, total := rankCategoryBuckets(buckets, topCategories)

	slog.DebugContext(ctx, "spending by category computed",
		"user_id", userID, "rows", len(rows), "buckets", len(buckets))

	return &CategorySpendingReport{Data: data, TotalSpending: total}, nil
}

// SpendingByPayee returns the top 20 payees by spending in the range.
// Payees are grouped as the ledger stores them; no rollup applies.
func (s *Service) SpendingByPayee(ctx context.Context, userID string, start *time.Time, end time.Time) (*PayeeSpendingReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.ledger.SpendingByPayee(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch payee rows")
	}

	type payeeBucket struct {
		id    *string
		name  string
		total float64
	}
	buckets := make(map[string]*payeeBucket)
	for _, row := range rows {
		key := normalizePayee(row.Payee)
		b, ok := buckets[key]
		if !ok {
			b = &payeeBucket{id: row.PayeeID, name: row.Payee}
			buckets[key] = b
		}
		b.total += env.convert(row.Total, row.Currency)
	}

	var grand float64
	data := make([]PayeeSpend, 0, len(buckets))
	for _, b := range buckets {
		grand += b.total
		data = append(data, PayeeSpend{PayeeID: b.id, PayeeName: b.name, Total: core.Round2(b.total)})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Total != data[j].Total {
			return data[i].Total > data[j].Total
		}
		return data[i].PayeeName < data[j].PayeeName
	})
	if len(data) > topPayees {
		data = data[:topPayees]
	}

	return &PayeeSpendingReport{Data: data, TotalSpending: core.Round2(grand)}, nil
}
