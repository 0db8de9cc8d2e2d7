package reports

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"finsight/internal/core"
)

// billTolerance is the inclusive band around a template's expected
// amount inside which a transaction counts as a payment of that bill.
const billTolerance = 0.2

// BillPaymentHistory reconciles actual transactions against the user's
// expected recurring bills.
//
// A transaction matches a template when its normalized payee equals the
// template's and its converted absolute amount lies within ±20% of the
// expected amount, boundaries included. Out-of-band transactions for a
// matched payee are ignored, never reassigned to another template.
func (s *Service) BillPaymentHistory(ctx context.Context, userID string, start *time.Time, end time.Time) (*BillPaymentReport, error) {
	env, err := s.buildEnv(ctx, userID)
	if err != nil {
		return nil, err
	}
	templates, err := s.bills.BillTemplates(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch bill templates")
	}
	txns, err := s.ledger.ExpenseTransactions(ctx, userID, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "fetch expense transactions")
	}

	type billAcc struct {
		template core.BillTemplate
		payments int
		total    float64
		last     string
	}
	byPayee := make(map[string]*billAcc, len(templates))
	order := make([]*billAcc, 0, len(templates))
	for _, t := range templates {
		acc := &billAcc{template: t}
		byPayee[normalizePayee(t.PayeeName)] = acc
		order = append(order, acc)
	}

	monthly := make(map[string]float64)
	var totalPaid float64
	for _, tx := range txns {
		acc, ok := byPayee[normalizePayee(tx.Payee)]
		if !ok {
			continue
		}
		amount := env.convert(-tx.Amount, tx.Currency)
		lo := acc.template.ExpectedAmount * (1 - billTolerance)
		hi := acc.template.ExpectedAmount * (1 + billTolerance)
		if amount < lo || amount > hi {
			continue
		}
		acc.payments++
		acc.total += amount
		totalPaid += amount
		if d := tx.Date.Format("2006-01-02"); d > acc.last {
			acc.last = d
		}
		monthly[core.MonthKey(tx.Date)] += amount
	}

	payments := make([]BillPaymentSummary, 0, len(order))
	for _, acc := range order {
		avg := 0.0
		if acc.payments > 0 {
			avg = acc.total / float64(acc.payments)
		}
		payments = append(payments, BillPaymentSummary{
			BillID:          acc.template.ID,
			Name:            acc.template.Name,
			PayeeName:       acc.template.PayeeName,
			ExpectedAmount:  acc.template.ExpectedAmount,
			Payments:        acc.payments,
			TotalPaid:       core.Round2(acc.total),
			AveragePaid:     core.Round2(avg),
			LastPaymentDate: acc.last,
		})
	}

	monthKeys := make([]string, 0, len(monthly))
	for k := range monthly {
		monthKeys = append(monthKeys, k)
	}
	sort.Strings(monthKeys)
	monthlyTotals := make([]MonthTotal, 0, len(monthKeys))
	for _, k := range monthKeys {
		monthlyTotals = append(monthlyTotals, MonthTotal{Month: k, Total: core.Round2(monthly[k])})
	}

	monthsCovered := len(monthKeys)
	divisor := monthsCovered
	if divisor < 1 {
		divisor = 1
	}

	return &BillPaymentReport{
		BillPayments:  payments,
		MonthlyTotals: monthlyTotals,
		Summary: BillSummary{
			TotalPaid:      core.Round2(totalPaid),
			MonthlyAverage: core.Round2(totalPaid / float64(divisor)),
			MonthsCovered:  monthsCovered,
		},
	}, nil
}
