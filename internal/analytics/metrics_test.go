package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersight/ledgersight/internal/ledger"
)

func TestChangePercentage(t *testing.T) {
	tests := []struct {
		name              string
		current, previous string
		want              float64
	}{
		{"both zero", "0", "0", 0.0},
		{"from zero to positive", "50", "0", 100.0},
		{"from zero to negative", "-50", "0", 0.0},
		{"normal increase", "300", "200", 50.0},
		{"normal decrease", "150", "200", -25.0},
		{"negative previous", "-100", "-200", -50.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChangePercentage(dec(tt.current), dec(tt.previous))
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestCurrentTotalAssets(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "1000", "1000", ""),
		tx("X", date(2024, 1, 10), "-100", "900", ""),
		tx("Y", date(2024, 1, 5), "500", "500", ""),
	)
	c := NewMetricsCalculator(store)

	total, err := c.CurrentTotalAssets()
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("1400")), "got %s", total)
}

func TestTotalAssetsAt(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "1000", "1000", ""),
		tx("X", date(2024, 1, 10), "-100", "900", ""),
		tx("Y", date(2024, 1, 5), "500", "500", ""),
	)
	c := NewMetricsCalculator(store)

	at, err := c.TotalAssetsAt(date(2024, 1, 6))
	require.NoError(t, err)
	assert.True(t, at.Equal(dec("1500")), "got %s", at)

	at, err = c.TotalAssetsAt(date(2023, 12, 31))
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestDailyAverageExpense(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "-30", "970", "a"),
		tx("X", date(2024, 1, 3), "-70", "900", "b"),
		tx("X", date(2024, 1, 2), "500", "1470", "salary"), // credit, ignored
	)
	c := NewMetricsCalculator(store)

	// 100 spent over 5 inclusive days.
	avg, err := c.DailyAverageExpense(date(2024, 1, 1), date(2024, 1, 5))
	require.NoError(t, err)
	assert.InDelta(t, 20.0, avg, 0.0001)

	// Inverted range has zero days.
	avg, err = c.DailyAverageExpense(date(2024, 1, 5), date(2024, 1, 1))
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestEmergencyReserveMonths_Sentinel(t *testing.T) {
	// Income only: daily average expense is zero, runway is unbounded.
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "1000", "1000", ""),
	)
	c := NewMetricsCalculator(store)
	c.now = func() time.Time { return date(2024, 3, 1) }

	months, err := c.EmergencyReserveMonths(90)
	require.NoError(t, err)
	assert.Equal(t, -1.0, months)
}

func TestEmergencyReserveMonths(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "9000", "9000", ""),
		tx("X", date(2024, 2, 25), "-90", "8910", "groceries"),
	)
	c := NewMetricsCalculator(store)
	c.now = func() time.Time { return date(2024, 3, 1) }

	// 90 spent over a 90-day trailing window: daily avg 1.0.
	months, err := c.EmergencyReserveMonths(90)
	require.NoError(t, err)
	assert.InDelta(t, 8910.0/30.0, months, 0.001)
}

func TestReserveMonthsFor(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 1), "3000", "3000", ""),
	)
	c := NewMetricsCalculator(store)

	months, err := c.ReserveMonthsFor(10)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, months, 0.0001)

	months, err = c.ReserveMonthsFor(0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, months)

	months, err = c.ReserveMonthsFor(-5)
	require.NoError(t, err)
	assert.Equal(t, -1.0, months)
}

func TestPeriodTotals(t *testing.T) {
	store := ledger.NewMemoryStore(
		tx("X", date(2024, 1, 5), "8000", "8000", "Salary"),
		tx("X", date(2024, 1, 10), "-1200", "6800", "Rent"),
		tx("X", date(2024, 1, 20), "-300", "6500", "Food"),
		tx("X", date(2024, 2, 1), "-999", "5501", "next month"),
	)
	c := NewMetricsCalculator(store)

	income, expense, err := c.PeriodTotals(date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.True(t, income.Equal(dec("8000")), "income %s", income)
	assert.True(t, expense.Equal(dec("1500")), "expense %s", expense)
}
