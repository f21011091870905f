package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var txSeq int

// tx builds a ledger row; created_at increments per call so insertion order
// doubles as the intra-day order.
func tx(account string, day time.Time, amount, balanceAfter, counterparty string) model.Transaction {
	txSeq++
	return model.Transaction{
		ID:           fmt.Sprintf("tx-%04d", txSeq),
		AccountID:    account,
		Date:         day,
		CreatedAt:    day.Add(time.Duration(txSeq) * time.Second),
		Amount:       dec(amount),
		BalanceAfter: dec(balanceAfter),
		Counterparty: counterparty,
		Currency:     "CNY",
	}
}
