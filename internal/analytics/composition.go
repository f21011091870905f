package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/model"
)

// UnknownKey is the canonical bucket for transactions with no counterparty.
const UnknownKey = "unknown merchant"

// Compose groups transactions by keyFn, sums amountFn, and returns items
// sorted by amount descending (name ascending on ties, so the order is
// deterministic). Percentages are of the grand total, rounded to one decimal;
// a zero total yields zero percentages, never NaN. The same routine backs
// income, expense, and flexible-spend breakdowns.
func Compose(txs []model.Transaction, keyFn func(model.Transaction) string, amountFn func(model.Transaction) decimal.Decimal) []model.CompositionItem {
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	total := decimal.Zero

	for _, tx := range txs {
		key := keyFn(tx)
		if key == "" {
			key = UnknownKey
		}
		amount := amountFn(tx)
		sums[key] = sums[key].Add(amount)
		counts[key]++
		total = total.Add(amount)
	}

	items := make([]model.CompositionItem, 0, len(sums))
	for key, sum := range sums {
		var pct float64
		if !total.IsZero() {
			pct, _ = sum.Div(total).Mul(decimal.NewFromInt(100)).Round(1).Float64()
		}
		items = append(items, model.CompositionItem{
			Name:       key,
			Amount:     sum,
			Percentage: pct,
			Count:      counts[key],
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].Amount.Equal(items[j].Amount) {
			return items[i].Amount.GreaterThan(items[j].Amount)
		}
		return items[i].Name < items[j].Name
	})
	return items
}

// ByCounterparty is the keyFn for merchant-keyed breakdowns.
func ByCounterparty(tx model.Transaction) string {
	return tx.Counterparty
}

// SignedAmount is the amountFn for income breakdowns.
func SignedAmount(tx model.Transaction) decimal.Decimal {
	return tx.Amount
}

// AbsoluteAmount is the amountFn for expense breakdowns.
func AbsoluteAmount(tx model.Transaction) decimal.Decimal {
	return tx.Magnitude()
}
