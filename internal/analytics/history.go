package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/ledger"
	"github.com/ledgersight/ledgersight/internal/model"
)

// Granularity selects the time bucket of a trend series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity validates a granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("%w: %q (want day, week, or month)", ErrBadGranularity, s)
}

// HistoryBuilder reconstructs the total-asset trajectory by replaying the
// full ledger. It always scans every transaction ever recorded, not just the
// requested window: per-account totals accumulate from account opening, so a
// windowed scan would start from stale balances.
type HistoryBuilder struct {
	store ledger.Store
}

// NewHistoryBuilder creates a HistoryBuilder over a ledger store.
func NewHistoryBuilder(store ledger.Store) *HistoryBuilder {
	return &HistoryBuilder{store: store}
}

// Reconstruct returns one TrendPoint per bucket between start and end.
// At day granularity there is exactly one point per calendar day with no
// gaps: days without transactions carry the previous day's total forward.
// An empty ledger yields an empty series.
func (h *HistoryBuilder) Reconstruct(start, end time.Time, g Granularity) ([]model.TrendPoint, error) {
	txs, err := h.store.ListTransactions(ledger.Filter{})
	if err != nil {
		return nil, fmt.Errorf("loading ledger: %w", err)
	}
	if len(txs) == 0 {
		return nil, nil
	}

	// The store contract already orders by (date, created_at); sort again so
	// the day-boundary semantics never depend on a store implementation
	// getting it right. Within a day the last row's balance_after wins.
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Before(txs[j]) })

	daily := replay(txs, model.Day(start), model.Day(end))
	return bucket(daily, g), nil
}

// dailyPoint is one carry-forward snapshot in the daily trajectory.
type dailyPoint struct {
	date  time.Time
	total decimal.Decimal
}

// replay streams transactions into per-day total-asset snapshots, emitting
// only days in [start, end].
func replay(txs []model.Transaction, start, end time.Time) []dailyPoint {
	lastBalance := make(map[string]decimal.Decimal)
	total := decimal.Zero
	next := 0

	var out []dailyPoint
	for day := model.Day(txs[0].Date); !day.After(end); day = day.AddDate(0, 0, 1) {
		for next < len(txs) && !model.Day(txs[next].Date).After(day) {
			tx := txs[next]
			total = total.Sub(lastBalance[tx.AccountID]).Add(tx.BalanceAfter)
			lastBalance[tx.AccountID] = tx.BalanceAfter
			next++
		}
		if !day.Before(start) {
			out = append(out, dailyPoint{date: day, total: total})
		}
	}
	return out
}

// bucket aggregates daily snapshots into the requested granularity, keeping
// the latest day's snapshot per bucket.
func bucket(daily []dailyPoint, g Granularity) []model.TrendPoint {
	if g == GranularityDay {
		out := make([]model.TrendPoint, 0, len(daily))
		for _, p := range daily {
			out = append(out, model.TrendPoint{Label: p.date.Format("2006-01-02"), Value: p.total})
		}
		return out
	}

	var order []string
	latest := make(map[string]decimal.Decimal)
	for _, p := range daily {
		label := bucketLabel(p.date, g)
		if _, seen := latest[label]; !seen {
			order = append(order, label)
		}
		latest[label] = p.total // daily points arrive in order, so last write is the latest day
	}

	out := make([]model.TrendPoint, 0, len(order))
	for _, label := range order {
		out = append(out, model.TrendPoint{Label: label, Value: latest[label]})
	}
	return out
}

func bucketLabel(day time.Time, g Granularity) string {
	if g == GranularityWeek {
		year, week := day.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return day.Format("2006-01")
}
