package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

// stubStore implements every collaborator port from canned data.
type stubStore struct {
	currency   string
	rates      []core.RateRow
	index      core.CategoryIndex
	catRows    []core.CategoryTotalRow
	incomeRows []core.CategoryTotalRow
	payeeRows  []core.PayeeTotalRow
	trendRows  []core.MonthCategoryRow
	flowRows   []core.MonthlyFlowRow
	dayRows    []core.DayCategoryRow
	txns       []core.TransactionRow
	candidates []core.RecurringCandidateRow
	templates  []core.BillTemplate

	err error

	// captured arguments
	lastStart   *time.Time
	lastEnd     time.Time
	lastMinOccs int
}

func (st *stubStore) SpendingByCategory(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.catRows, st.err
}

func (st *stubStore) SpendingByPayee(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.PayeeTotalRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.payeeRows, st.err
}

func (st *stubStore) IncomeByCategory(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.CategoryTotalRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.incomeRows, st.err
}

func (st *stubStore) MonthlyCategorySpending(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.MonthCategoryRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.trendRows, st.err
}

func (st *stubStore) MonthlyFlows(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.MonthlyFlowRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.flowRows, st.err
}

func (st *stubStore) SpendingByWeekday(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.DayCategoryRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.dayRows, st.err
}

func (st *stubStore) ExpenseTransactions(_ context.Context, _ string, start *time.Time, end time.Time) ([]core.TransactionRow, error) {
	st.lastStart, st.lastEnd = start, end
	return st.txns, st.err
}

func (st *stubStore) RecurringCandidates(_ context.Context, _ string, _ time.Time, minOccurrences int) ([]core.RecurringCandidateRow, error) {
	st.lastMinOccs = minOccurrences
	return st.candidates, st.err
}

func (st *stubStore) CategoryIndex(context.Context, string) (core.CategoryIndex, error) {
	return st.index, st.err
}

func (st *stubStore) DefaultCurrency(context.Context, string) (string, error) {
	if st.currency == "" {
		return "USD", st.err
	}
	return st.currency, st.err
}

func (st *stubStore) RateSnapshot(context.Context) ([]core.RateRow, error) {
	return st.rates, st.err
}

func (st *stubStore) BillTemplates(context.Context, string) ([]core.BillTemplate, error) {
	return st.templates, st.err
}

// testClock anchors every trailing window in the suite.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestService(st *stubStore) *Service {
	return New(st, st, st, st, st).WithClock(func() time.Time { return testNow })
}

func ptr(s string) *string { return &s }

func TestServicePropagatesStoreErrors(t *testing.T) {
	sentinel := errors.New("store unavailable")
	st := &stubStore{err: sentinel}
	svc := newTestService(st)

	_, err := svc.SpendingByCategory(context.Background(), "u1", nil, testNow)
	require.Error(t, err)
	assert.Equal(t, sentinel, pkgerrors.Cause(err))
}

func TestServiceIsDeterministic(t *testing.T) {
	st := &stubStore{
		currency: "USD",
		index: core.CategoryIndex{
			"a": {ID: "a", Name: "Alpha"},
			"b": {ID: "b", Name: "Beta"},
		},
		catRows: []core.CategoryTotalRow{
			{CategoryID: ptr("a"), Currency: "USD", Total: 120.555},
			{CategoryID: ptr("b"), Currency: "USD", Total: 120.555},
		},
	}
	svc := newTestService(st)

	first, err := svc.SpendingByCategory(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := svc.SpendingByCategory(context.Background(), "u1", nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
