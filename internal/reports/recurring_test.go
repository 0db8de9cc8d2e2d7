package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

func TestClassifyFrequency(t *testing.T) {
	cases := []struct {
		occurrences int
		want        string
	}{
		{30, FrequencyWeekly},
		{24, FrequencyWeekly},
		{23, FrequencyBiweekly},
		{12, FrequencyBiweekly},
		{11, FrequencyMonthly},
		{5, FrequencyMonthly},
		{4, FrequencyOccasional},
		{3, FrequencyOccasional},
		{2, FrequencyIrregular},
		{0, FrequencyIrregular},
	}
	for _, tc := range cases {
		if got := classifyFrequency(tc.occurrences); got != tc.want {
			t.Errorf("classifyFrequency(%d) = %q, want %q", tc.occurrences, got, tc.want)
		}
	}
}

func TestRecurringExpensesMonthlyScenario(t *testing.T) {
	st := &stubStore{
		currency: "USD",
		candidates: []core.RecurringCandidateRow{
			{
				Payee:       "Gym",
				Currency:    "USD",
				Occurrences: 6,
				Total:       90,
				FirstDate:   testNow.AddDate(0, -6, 5),
				LastDate:    testNow.AddDate(0, 0, -10),
			},
		},
	}
	svc := newTestService(st)

	rep, err := svc.RecurringExpenses(context.Background(), "u1", 3)
	require.NoError(t, err)

	require.Len(t, rep.Data, 1)
	entry := rep.Data[0]
	assert.Equal(t, "Gym", entry.Payee)
	assert.Equal(t, FrequencyMonthly, entry.Frequency)
	assert.Equal(t, 6, entry.Occurrences)
	assert.Equal(t, 90.0, entry.Total)
	assert.Equal(t, 15.0, entry.AverageAmount)

	assert.Equal(t, 90.0, rep.Summary.TotalRecurring)
	assert.Equal(t, 15.0, rep.Summary.MonthlyEstimate)
	assert.Equal(t, 1, rep.Summary.Count)
}

func TestRecurringExpensesMergesCurrencies(t *testing.T) {
	last := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	st := &stubStore{
		currency: "USD",
		rates:    []core.RateRow{{From: "EUR", To: "USD", Rate: 2}},
		candidates: []core.RecurringCandidateRow{
			{Payee: "Spotify", Currency: "USD", Occurrences: 3, Total: 30, LastDate: last},
			{Payee: " spotify ", Currency: "EUR", Occurrences: 3, Total: 10, LastDate: last.AddDate(0, 0, 3)},
		},
	}
	svc := newTestService(st)

	rep, err := svc.RecurringExpenses(context.Background(), "u1", 3)
	require.NoError(t, err)

	require.Len(t, rep.Data, 1)
	entry := rep.Data[0]
	assert.Equal(t, 6, entry.Occurrences)
	assert.Equal(t, 50.0, entry.Total) // 30 USD + 10 EUR at 2.0
	assert.Equal(t, FrequencyMonthly, entry.Frequency)
	assert.Equal(t, 8.33, entry.AverageAmount)
	assert.Equal(t, "2025-06-04", entry.LastDate)
}

func TestRecurringExpensesDefaultMinOccurrences(t *testing.T) {
	st := &stubStore{currency: "USD"}
	svc := newTestService(st)

	_, err := svc.RecurringExpenses(context.Background(), "u1", 0)
	require.NoError(t, err)
	// the per-currency floor is enforced store-side, before the merge
	assert.Equal(t, DefaultMinOccurrences, st.lastMinOccs)
}
