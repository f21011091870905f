package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/ledger"
	"github.com/ledgersight/ledgersight/internal/model"
)

// MetricsCalculator computes point-in-time aggregates over the ledger. Every
// method is a pure read; degenerate data (empty ledger, zero-day ranges)
// produces the documented defaults, while storage faults propagate unchanged.
type MetricsCalculator struct {
	store ledger.Store
	now   func() time.Time
}

// NewMetricsCalculator creates a MetricsCalculator over a ledger store.
func NewMetricsCalculator(store ledger.Store) *MetricsCalculator {
	return &MetricsCalculator{store: store, now: time.Now}
}

// CurrentTotalAssets sums, per account, the balance_after of the row with
// maximal (date, created_at).
func (c *MetricsCalculator) CurrentTotalAssets() (decimal.Decimal, error) {
	return c.TotalAssetsAt(time.Time{})
}

// TotalAssetsAt is CurrentTotalAssets restricted to rows with date <= at.
// A zero time means no restriction.
func (c *MetricsCalculator) TotalAssetsAt(at time.Time) (decimal.Decimal, error) {
	txs, err := c.store.ListTransactions(ledger.Filter{To: at})
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading ledger: %w", err)
	}

	// Rows arrive ordered by (date, created_at), so the last row seen per
	// account is its latest balance.
	latest := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		latest[tx.AccountID] = tx.BalanceAfter
	}

	total := decimal.Zero
	for _, balance := range latest {
		total = total.Add(balance)
	}
	return total, nil
}

// ChangePercentage returns the percent change from previous to current.
// A zero previous yields 100 for positive current and 0 otherwise, never a
// division error.
func ChangePercentage(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100.0
		}
		return 0.0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// DailyAverageExpense returns the mean absolute debit per calendar day over
// [start, end], both endpoints inclusive. Zero-or-negative-length ranges
// return 0.
func (c *MetricsCalculator) DailyAverageExpense(start, end time.Time) (float64, error) {
	days := int(model.Day(end).Sub(model.Day(start)).Hours()/24) + 1
	if days <= 0 {
		return 0, nil
	}

	txs, err := c.store.ListTransactions(ledger.Filter{From: start, To: end, Sign: ledger.SignDebit})
	if err != nil {
		return 0, fmt.Errorf("loading expenses: %w", err)
	}

	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Magnitude())
	}
	avg, _ := total.Div(decimal.NewFromInt(int64(days))).Float64()
	return avg, nil
}

// EmergencyReserveMonths divides current total assets by 30x the daily
// average expense over the trailing windowDays. A non-positive daily average
// returns the -1 sentinel: runway is unbounded when nothing is being spent.
func (c *MetricsCalculator) EmergencyReserveMonths(windowDays int) (float64, error) {
	end := model.Day(c.now())
	start := end.AddDate(0, 0, -(windowDays - 1))
	dailyAvg, err := c.DailyAverageExpense(start, end)
	if err != nil {
		return 0, err
	}
	return c.ReserveMonthsFor(dailyAvg)
}

// ReserveMonthsFor computes reserve months from a caller-supplied daily
// average expense.
func (c *MetricsCalculator) ReserveMonthsFor(dailyAvg float64) (float64, error) {
	if dailyAvg <= 0 {
		return -1.0, nil
	}
	assets, err := c.CurrentTotalAssets()
	if err != nil {
		return 0, err
	}
	f, _ := assets.Float64()
	return f / (dailyAvg * 30), nil
}

// PeriodTotals returns the income and expense totals (expense as a positive
// magnitude) for [start, end].
func (c *MetricsCalculator) PeriodTotals(start, end time.Time) (income, expense decimal.Decimal, err error) {
	txs, err := c.store.ListTransactions(ledger.Filter{From: start, To: end})
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("loading period: %w", err)
	}

	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if tx.IsCredit() {
			income = income.Add(tx.Amount)
		} else if tx.IsDebit() {
			expense = expense.Add(tx.Magnitude())
		}
	}
	return income, expense, nil
}
