// Package ledger provides read access to the append-only transaction store.
// The analytics core only ever reads; writes exist for the loader and seeder.
package ledger

import (
	"time"

	"github.com/ledgersight/ledgersight/internal/model"
)

// Sign filters transactions by the sign of their amount.
type Sign int

const (
	SignAny    Sign = iota
	SignCredit      // amount > 0 (income)
	SignDebit       // amount < 0 (expense)
)

// Filter narrows a transaction query. Zero values mean "no constraint".
// From/To are inclusive calendar-day bounds.
type Filter struct {
	AccountID string
	From      time.Time
	To        time.Time
	Sign      Sign
}

// Store is the query surface the analytics engine consumes. Implementations
// must return transactions ordered ascending by (date, created_at); that
// ordering is load-bearing for balance-history reconstruction.
type Store interface {
	ListTransactions(f Filter) ([]model.Transaction, error)
	ListAccounts() ([]string, error)
}

// Writer is the append side, used by the CSV loader and the seeder.
// The analytics core never writes.
type Writer interface {
	InsertTransactions(txs []model.Transaction) error
}

// Matches reports whether a transaction passes the filter.
func (f Filter) Matches(tx model.Transaction) bool {
	if f.AccountID != "" && tx.AccountID != f.AccountID {
		return false
	}
	day := model.Day(tx.Date)
	if !f.From.IsZero() && day.Before(model.Day(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(model.Day(f.To)) {
		return false
	}
	switch f.Sign {
	case SignCredit:
		return tx.IsCredit()
	case SignDebit:
		return tx.IsDebit()
	}
	return true
}
