package reports

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/core"
)

func TestWeekendVsWeekdayPartition(t *testing.T) {
	st := &stubStore{
		currency: "USD",
		index:    rollupIndex(),
		dayRows: []core.DayCategoryRow{
			{Weekday: 0, CategoryID: ptr("parent"), Currency: "USD", Total: 40}, // Sunday
			{Weekday: 6, CategoryID: ptr("parent"), Currency: "USD", Total: 60}, // Saturday
			{Weekday: 1, CategoryID: ptr("parent"), Currency: "USD", Total: 10},
			{Weekday: 3, CategoryID: ptr("child"), Currency: "USD", Total: 20},
			{Weekday: 5, CategoryID: nil, Currency: "USD", Total: 30},
		},
	}
	svc := newTestService(st)

	rep, err := svc.WeekendVsWeekday(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)

	require.Len(t, rep.ByDay, 7)
	for d, day := range rep.ByDay {
		assert.Equal(t, d, day.Weekday)
	}
	assert.Equal(t, "Sunday", rep.ByDay[0].Label)
	assert.Equal(t, "Saturday", rep.ByDay[6].Label)
	assert.Equal(t, 40.0, rep.ByDay[0].Total)
	assert.Equal(t, 0.0, rep.ByDay[2].Total)

	assert.Equal(t, 100.0, rep.Summary.WeekendTotal)
	assert.Equal(t, 60.0, rep.Summary.WeekdayTotal)
	assert.Equal(t, 50.0, rep.Summary.WeekendDailyAverage)
	assert.Equal(t, 12.0, rep.Summary.WeekdayDailyAverage)

	// child rolled into parent; uncategorized stays its own bucket
	require.Len(t, rep.ByCategory, 2)
	assert.Equal(t, "Home", rep.ByCategory[0].CategoryName)
	assert.Equal(t, 100.0, rep.ByCategory[0].WeekendTotal)
	assert.Equal(t, 30.0, rep.ByCategory[0].WeekdayTotal)
	assert.Equal(t, 130.0, rep.ByCategory[0].Total)
}

func TestWeekendVsWeekdayTopTenCategories(t *testing.T) {
	st := &stubStore{currency: "USD", index: core.CategoryIndex{}}
	for i := 0; i < 14; i++ {
		id := fmt.Sprintf("c%02d", i)
		st.index[id] = core.Category{ID: id, Name: "Cat " + id}
		st.dayRows = append(st.dayRows, core.DayCategoryRow{
			Weekday: i % 7, CategoryID: ptr(id), Currency: "USD", Total: float64(10 + i),
		})
	}
	svc := newTestService(st)

	rep, err := svc.WeekendVsWeekday(context.Background(), "u1", nil, testNow)
	require.NoError(t, err)
	assert.Len(t, rep.ByCategory, 10)
	assert.Equal(t, 23.0, rep.ByCategory[0].Total)
}
