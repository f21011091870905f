package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgersight/ledgersight/internal/model"
)

// Header is the CSV header for normalized transaction files. This is the
// post-extraction format: rows are already one-per-ledger-event with signed
// amounts, not raw bank exports.
const Header = "id,account_id,date,created_at,amount,balance_after,counterparty,description,currency"

const (
	numFields    = 9
	colID        = 0
	colAccountID = 1
	colDate      = 2
	colCreatedAt = 3
	colAmount    = 4
	colBalance   = 5
	colCparty    = 6
	colDesc      = 7
	colCurrency  = 8
)

// ReadTransactions reads all rows from a normalized transaction CSV.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colAccountID] = tx.AccountID
	row[colDate] = model.Day(tx.Date).Format(dayFormat)
	row[colCreatedAt] = tx.CreatedAt.UTC().Format(time.RFC3339Nano)
	row[colAmount] = tx.Amount.String()
	row[colBalance] = tx.BalanceAfter.String()
	row[colCparty] = tx.Counterparty
	row[colDesc] = tx.Description
	row[colCurrency] = tx.Currency
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. A missing
// balance_after is rejected: reconstruction depends on it being present.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.ParseInLocation("2006-01-02", record[colDate], time.UTC)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	created, err := time.Parse(time.RFC3339Nano, record[colCreatedAt])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	if record[colBalance] == "" {
		return model.Transaction{}, fmt.Errorf("transaction %s has no balance_after", record[colID])
	}
	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance_after %q: %w", record[colBalance], err)
	}

	return model.Transaction{
		ID:           record[colID],
		AccountID:    record[colAccountID],
		Date:         date,
		CreatedAt:    created,
		Amount:       amount,
		BalanceAfter: balance,
		Counterparty: record[colCparty],
		Description:  record[colDesc],
		Currency:     record[colCurrency],
	}, nil
}
