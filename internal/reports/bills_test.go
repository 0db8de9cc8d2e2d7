package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

func billTx(date time.Time, payee string, magnitude float64, currency string) core.TransactionRow {
	return core.TransactionRow{Date: date, Payee: payee, Amount: -magnitude, Currency: currency}
}

func TestBillPaymentHistoryToleranceBand(t *testing.T) {
	st := &stubStore{
		currency:  "USD",
		templates: []core.BillTemplate{{ID: 1, Name: "Electricity", PayeeName: "Electric Co", ExpectedAmount: 100}},
		txns: []core.TransactionRow{
			billTx(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "Electric Co", 80, "USD"),   // lower bound, accepted
			billTx(time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), "electric co ", 120, "USD"), // upper bound, accepted
			billTx(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "Electric Co", 100, "USD"),
			billTx(time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), "Electric Co", 79, "USD"),  // below the band
			billTx(time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), "Electric Co", 121, "USD"), // above the band
			billTx(time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC), "Water Works", 100, "USD"), // no template
		},
	}
	svc := newTestService(st)

	rep, err := svc.BillPaymentHistory(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)

	require.Len(t, rep.BillPayments, 1)
	bill := rep.BillPayments[0]
	assert.Equal(t, int64(1), bill.BillID)
	assert.Equal(t, 3, bill.Payments)
	assert.Equal(t, 300.0, bill.TotalPaid)
	assert.Equal(t, 100.0, bill.AveragePaid)
	assert.Equal(t, "2025-03-05", bill.LastPaymentDate)

	require.Len(t, rep.MonthlyTotals, 3)
	assert.Equal(t, MonthTotal{Month: "2025-01", Total: 80}, rep.MonthlyTotals[0])
	assert.Equal(t, MonthTotal{Month: "2025-02", Total: 120}, rep.MonthlyTotals[1])
	assert.Equal(t, MonthTotal{Month: "2025-03", Total: 100}, rep.MonthlyTotals[2])

	assert.Equal(t, 300.0, rep.Summary.TotalPaid)
	assert.Equal(t, 100.0, rep.Summary.MonthlyAverage)
	assert.Equal(t, 3, rep.Summary.MonthsCovered)
}

func TestBillPaymentHistoryConvertsBeforeMatching(t *testing.T) {
	st := &stubStore{
		currency:  "USD",
		rates:     []core.RateRow{{From: "EUR", To: "USD", Rate: 2}},
		templates: []core.BillTemplate{{ID: 7, Name: "Rent", PayeeName: "Landlord", ExpectedAmount: 1000}},
		txns: []core.TransactionRow{
			// 500 EUR converts to exactly the expected 1000 USD
			billTx(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "Landlord", 500, "EUR"),
			// 700 EUR converts to 1400, outside the band
			billTx(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "Landlord", 700, "EUR"),
		},
	}
	svc := newTestService(st)

	rep, err := svc.BillPaymentHistory(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)
	require.Len(t, rep.BillPayments, 1)
	assert.Equal(t, 1, rep.BillPayments[0].Payments)
	assert.Equal(t, 1000.0, rep.BillPayments[0].TotalPaid)
}

func TestBillPaymentHistoryNoPayments(t *testing.T) {
	st := &stubStore{
		currency:  "USD",
		templates: []core.BillTemplate{{ID: 2, Name: "Internet", PayeeName: "ISP", ExpectedAmount: 60}},
	}
	svc := newTestService(st)

	rep, err := svc.BillPaymentHistory(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)

	require.Len(t, rep.BillPayments, 1)
	assert.Zero(t, rep.BillPayments[0].Payments)
	assert.Zero(t, rep.BillPayments[0].AveragePaid)
	assert.Empty(t, rep.BillPayments[0].LastPaymentDate)
	assert.Empty(t, rep.MonthlyTotals)
	// divide-by-zero guard: zero total over a floor of one month
	assert.Zero(t, rep.Summary.MonthlyAverage)
	assert.Zero(t, rep.Summary.MonthsCovered)
}
