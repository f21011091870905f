package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable ledger event produced by the import pipeline.
// Amount is signed: positive = credit, negative = debit. BalanceAfter is the
// authoritative post-transaction account balance and is never recomputed here.
type Transaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Date         time.Time       `json:"date"`       // calendar day
	CreatedAt    time.Time       `json:"created_at"` // intra-day tiebreak
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Counterparty string          `json:"counterparty,omitempty"`
	Description  string          `json:"description,omitempty"`
	Currency     string          `json:"currency"`
}

// IsDebit reports whether the transaction is an expense (negative amount).
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// IsCredit reports whether the transaction is income (positive amount).
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// Magnitude returns the absolute amount.
func (t Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}

// Before orders transactions by (date, created_at), the ledger's total order
// within an account. The ordering must be deterministic: when the balance
// history is replayed, the chronologically last row of a day wins.
func (t Transaction) Before(other Transaction) bool {
	if !t.Date.Equal(other.Date) {
		return t.Date.Before(other.Date)
	}
	return t.CreatedAt.Before(other.CreatedAt)
}

// Day truncates a timestamp to a UTC calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
