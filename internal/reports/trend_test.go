package reports

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

func TestMonthlySpendingTrendPivot(t *testing.T) {
	st := &stubStore{
		currency: "USD",
		index:    rollupIndex(),
		trendRows: []core.MonthCategoryRow{
			{Month: "2025-02", CategoryID: ptr("child"), Currency: "USD", Total: 80},
			{Month: "2025-02", CategoryID: ptr("parent"), Currency: "USD", Total: 20},
			{Month: "2025-01", CategoryID: ptr("parent"), Currency: "USD", Total: 55},
		},
	}
	svc := newTestService(st)

	rep, err := svc.MonthlySpendingTrend(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)
	require.Len(t, rep.Data, 2)

	jan := rep.Data[0]
	assert.Equal(t, "2025-01", jan.Month)
	assert.Equal(t, 55.0, jan.TotalSpending)

	feb := rep.Data[1]
	assert.Equal(t, "2025-02", feb.Month)
	require.Len(t, feb.Categories, 1) // child merged into parent
	assert.Equal(t, "Home", feb.Categories[0].CategoryName)
	assert.Equal(t, 100.0, feb.Categories[0].Total)
	assert.Equal(t, 100.0, feb.TotalSpending)
}

func TestMonthlySpendingTrendLimitsCategoryAxis(t *testing.T) {
	st := &stubStore{currency: "USD", index: core.CategoryIndex{}}
	for i := 0; i < 13; i++ {
		id := fmt.Sprintf("c%02d", i)
		st.index[id] = core.Category{ID: id, Name: "Cat " + id}
		st.trendRows = append(st.trendRows, core.MonthCategoryRow{
			Month: "2025-03", CategoryID: ptr(id), Currency: "USD", Total: float64(1 + i),
		})
	}
	svc := newTestService(st)

	rep, err := svc.MonthlySpendingTrend(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)
	require.Len(t, rep.Data, 1)
	month := rep.Data[0]
	// axis capped at the global top 10 categories
	assert.Len(t, month.Categories, 10)
	assert.Equal(t, 13.0, month.Categories[0].Total)
	// the month total still covers the categories that fell off the axis
	assert.Equal(t, 91.0, month.TotalSpending)
}
