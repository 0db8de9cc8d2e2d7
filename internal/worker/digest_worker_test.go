package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/amqp"
	"finsight/internal/core"
	"finsight/internal/reports"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// digestStore is a canned-data store covering every report port.
type digestStore struct {
	categoryRows []core.CategoryTotalRow
	flowRows     []core.MonthlyFlowRow
	candidates   []core.RecurringCandidateRow

	err error

	lastStart *time.Time
	lastEnd   time.Time
}

func (s *digestStore) SpendingByCategory(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error) {
	s.lastStart, s.lastEnd = start, end
	return s.categoryRows, s.err
}

func (s *digestStore) SpendingByPayee(context.Context, string, *time.Time, time.Time) ([]core.PayeeTotalRow, error) {
	return nil, s.err
}

func (s *digestStore) IncomeByCategory(context.Context, string, *time.Time, time.Time) ([]core.CategoryTotalRow, error) {
	return nil, s.err
}

func (s *digestStore) MonthlyCategorySpending(context.Context, string, *time.Time, time.Time) ([]core.MonthCategoryRow, error) {
	return nil, s.err
}

func (s *digestStore) MonthlyFlows(context.Context, string, *time.Time, time.Time) ([]core.MonthlyFlowRow, error) {
	return s.flowRows, s.err
}

func (s *digestStore) SpendingByWeekday(context.Context, string, *time.Time, time.Time) ([]core.DayCategoryRow, error) {
	return nil, s.err
}

func (s *digestStore) ExpenseTransactions(context.Context, string, *time.Time, time.Time) ([]core.TransactionRow, error) {
	return nil, s.err
}

func (s *digestStore) RecurringCandidates(context.Context, string, time.Time, int) ([]core.RecurringCandidateRow, error) {
	return s.candidates, s.err
}

func (s *digestStore) CategoryIndex(context.Context, string) (core.CategoryIndex, error) {
	return core.CategoryIndex{}, s.err
}

func (s *digestStore) DefaultCurrency(context.Context, string) (string, error) {
	return "USD", s.err
}

func (s *digestStore) RateSnapshot(context.Context) ([]core.RateRow, error) {
	return nil, s.err
}

func (s *digestStore) BillTemplates(context.Context, string) ([]core.BillTemplate, error) {
	return nil, s.err
}

type capturingPublisher struct {
	published []*amqp.DigestReadyMessage
	err       error
}

func (p *capturingPublisher) PublishDigestReady(_ context.Context, msg *amqp.DigestReadyMessage) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func newDigestWorker(store *digestStore, publisher *capturingPublisher) *DigestWorker {
	svc := reports.New(store, store, store, store, store).WithClock(func() time.Time { return testNow })
	return NewDigestWorker(svc, publisher).WithClock(func() time.Time { return testNow })
}

func TestHandleDigestRequestPublishesAllSections(t *testing.T) {
	store := &digestStore{
		categoryRows: []core.CategoryTotalRow{
			{CategoryID: nil, Currency: "USD", Total: 120.5},
		},
		flowRows: []core.MonthlyFlowRow{
			{Year: 2025, Month: 5, Currency: "USD", Income: 2000, Expenses: 800},
		},
		candidates: []core.RecurringCandidateRow{
			{
				Payee: "Streamly", Currency: "USD", Occurrences: 6, Total: 60,
				FirstDate: time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC),
				LastDate:  time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	publisher := &capturingPublisher{}
	w := newDigestWorker(store, publisher)

	request := &amqp.DigestRequestMessage{ID: "req-1", UserID: "user-1", Timestamp: testNow}
	err := w.HandleDigestRequest(context.Background(), request)
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	ready := publisher.published[0]
	assert.Equal(t, "req-1", ready.RequestID)
	assert.Equal(t, "user-1", ready.UserID)
	assert.NotEmpty(t, ready.ID)

	require.NotNil(t, ready.Digest)
	require.NotNil(t, ready.Digest.Spending)
	assert.Equal(t, 120.5, ready.Digest.Spending.TotalSpending)
	require.NotNil(t, ready.Digest.Cashflow)
	assert.Equal(t, 2000.0, ready.Digest.Cashflow.Totals.Income)
	require.NotNil(t, ready.Digest.Anomalies)
	assert.Empty(t, ready.Digest.Anomalies.Anomalies)
	require.NotNil(t, ready.Digest.Recurring)
	require.Len(t, ready.Digest.Recurring.Data, 1)
	assert.Equal(t, "Streamly", ready.Digest.Recurring.Data[0].Payee)
}

func TestHandleDigestRequestWindowAnchorsOnClock(t *testing.T) {
	store := &digestStore{}
	w := newDigestWorker(store, &capturingPublisher{})

	err := w.HandleDigestRequest(context.Background(), &amqp.DigestRequestMessage{ID: "req-2", UserID: "user-1"})
	require.NoError(t, err)

	require.NotNil(t, store.lastStart)
	assert.Equal(t, testNow.AddDate(0, -digestWindowMonths, 0), *store.lastStart)
	assert.Equal(t, testNow, store.lastEnd)
}

func TestHandleDigestRequestStoreErrorFailsRequest(t *testing.T) {
	store := &digestStore{err: errors.New("ledger unavailable")}
	publisher := &capturingPublisher{}
	w := newDigestWorker(store, publisher)

	err := w.HandleDigestRequest(context.Background(), &amqp.DigestRequestMessage{ID: "req-3", UserID: "user-1"})
	require.Error(t, err)
	assert.Empty(t, publisher.published)
}

func TestHandleDigestRequestPublishErrorPropagates(t *testing.T) {
	store := &digestStore{}
	publisher := &capturingPublisher{err: errors.New("broker down")}
	w := newDigestWorker(store, publisher)

	err := w.HandleDigestRequest(context.Background(), &amqp.DigestRequestMessage{ID: "req-4", UserID: "user-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish digest")
}
