package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersight/ledgersight/internal/ledger"
	"github.com/ledgersight/ledgersight/internal/model"
)

func TestReconstruct_CarryForward(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "-50", "1000", ""),
		tx("X", date(2024, 1, 5), "500", "1500", ""),
	)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 5), GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 5)

	want := []string{"1000", "1000", "1000", "1000", "1500"}
	for i, p := range points {
		assert.True(t, p.Value.Equal(dec(want[i])), "day %d: got %s want %s", i, p.Value, want[i])
	}
	assert.Equal(t, "2024-01-01", points[0].Label)
	assert.Equal(t, "2024-01-05", points[4].Label)
}

func TestReconstruct_OnePointPerDay(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 3), "100", "100", ""),
		tx("Y", date(2024, 2, 10), "200", "200", ""),
	)
	h := NewHistoryBuilder(store)

	start, end := date(2024, 1, 10), date(2024, 3, 15)
	points, err := h.Reconstruct(start, end, GranularityDay)
	require.NoError(t, err)

	wantDays := int(end.Sub(start).Hours()/24) + 1
	require.Len(t, points, wantDays)

	// No gaps: consecutive labels are consecutive days.
	for i := 1; i < len(points); i++ {
		prev, err := time.Parse("2006-01-02", points[i-1].Label)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1).Format("2006-01-02"), points[i].Label)
	}
}

func TestReconstruct_LastPointMatchesTotalAssetsAt(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "1000", "1000", ""),
		tx("Y", date(2024, 1, 2), "300", "300", ""),
		tx("X", date(2024, 1, 8), "-200", "800", ""),
		tx("Y", date(2024, 1, 20), "50", "350", ""),
	)
	h := NewHistoryBuilder(store)
	c := NewMetricsCalculator(store)

	end := date(2024, 1, 15)
	points, err := h.Reconstruct(date(2024, 1, 1), end, GranularityDay)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	atEnd, err := c.TotalAssetsAt(end)
	require.NoError(t, err)
	assert.True(t, points[len(points)-1].Value.Equal(atEnd),
		"last point %s != total assets at end %s", points[len(points)-1].Value, atEnd)
}

func TestReconstruct_EmptyLedger(t *testing.T) {
	h := NewHistoryBuilder(ledger.NewMemoryStore())
	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 31), GranularityDay)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestReconstruct_SameDayLastWriteWins(t *testing.T) {
	first := tx("X", date(2024, 1, 1), "100", "100", "")
	second := tx("X", date(2024, 1, 1), "-30", "70", "") // later created_at
	store := ledger.NewMemoryStore(first, second)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 1), GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Value.Equal(dec("70")), "got %s", points[0].Value)
}

func TestReconstruct_MultipleAccounts(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "1000", "1000", ""),
		tx("Y", date(2024, 1, 2), "500", "500", ""),
		tx("X", date(2024, 1, 3), "-100", "900", ""),
	)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 3), GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.True(t, points[0].Value.Equal(dec("1000")))
	assert.True(t, points[1].Value.Equal(dec("1500")))
	assert.True(t, points[2].Value.Equal(dec("1400")))
}

func TestReconstruct_WindowStartsAfterHistory(t *testing.T) {
	// Balances accumulated before the window must be reflected in it.
	store := ledger.NewMemoryStore(
		tx("X", date(2023, 6, 1), "2000", "2000", ""),
	)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 2), GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.True(t, points[0].Value.Equal(dec("2000")))
}

func TestReconstruct_MonthBuckets(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 5), "100", "100", ""),
		tx("X", date(2024, 2, 20), "100", "200", ""),
	)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 2, 29), GranularityMonth)
	require.NoError(t, err)
	require.Len(t, points, 2)

	// Each month keeps its latest day's snapshot.
	assert.Equal(t, "2024-01", points[0].Label)
	assert.True(t, points[0].Value.Equal(dec("100")))
	assert.Equal(t, "2024-02", points[1].Label)
	assert.True(t, points[1].Value.Equal(dec("200")))
}

func TestReconstruct_WeekBuckets(t *testing.T) {
	// 2024-01-01 is a Monday: W01 covers Jan 1-7, W02 starts Jan 8.
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 2), "100", "100", ""),
		tx("X", date(2024, 1, 9), "100", "200", ""),
	)
	h := NewHistoryBuilder(store)

	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 14), GranularityWeek)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-W01", points[0].Label)
	assert.True(t, points[0].Value.Equal(dec("100")))
	assert.Equal(t, "2024-W02", points[1].Label)
	assert.True(t, points[1].Value.Equal(dec("200")))
}

func TestParseGranularity(t *testing.T) {
	for _, valid := range []string{"day", "week", "month"} {
		g, err := ParseGranularity(valid)
		require.NoError(t, err)
		assert.Equal(t, Granularity(valid), g)
	}

	_, err := ParseGranularity("year")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadGranularity)
}

// The reconstruction must not depend on store insertion order.
func TestReconstruct_UnorderedInsertion(t *testing.T) {
	store := ledger.NewMemoryStore()
	late := tx("X", date(2024, 1, 5), "500", "1500", "")
	early := tx("X", date(2024, 1, 1), "1000", "1000", "")
	require.NoError(t, store.InsertTransactions([]model.Transaction{late, early}))

	h := NewHistoryBuilder(store)
	points, err := h.Reconstruct(date(2024, 1, 1), date(2024, 1, 5), GranularityDay)
	require.NoError(t, err)
	require.Len(t, points, 5)
	assert.True(t, points[0].Value.Equal(dec("1000")))
	assert.True(t, points[4].Value.Equal(dec("1500")))
}
