package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/ledgersight/ledgersight/internal/model"
)

const dayFormat = "2006-01-02"

// SQLiteStore is a Store backed by a local SQLite file. Amounts and balances
// are stored as decimal strings so no precision is lost crossing the boundary.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) a ledger database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring ledger db: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	// balance_after is NOT NULL on purpose: reconstruction trusts it as
	// ground truth, so a row without one must be rejected at import time.
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		txn_date TEXT NOT NULL,
		created_at TEXT NOT NULL,
		amount TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		counterparty TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT 'CNY'
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_order ON transactions(txn_date, created_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id, txn_date);
	CREATE INDEX IF NOT EXISTS idx_transactions_counterparty ON transactions(counterparty);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrating ledger schema: %w", err)
	}
	return nil
}

// InsertTransactions appends rows to the ledger inside a single transaction.
func (s *SQLiteStore) InsertTransactions(txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbtx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert: %w", err)
	}
	defer dbtx.Rollback()

	stmt, err := dbtx.Prepare(`
		INSERT INTO transactions (id, account_id, txn_date, created_at, amount,
			balance_after, counterparty, description, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		_, err := stmt.Exec(
			tx.ID,
			tx.AccountID,
			model.Day(tx.Date).Format(dayFormat),
			tx.CreatedAt.UTC().Format(time.RFC3339Nano),
			tx.Amount.String(),
			tx.BalanceAfter.String(),
			tx.Counterparty,
			tx.Description,
			tx.Currency,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %s: %w", tx.ID, err)
		}
	}

	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

// ListTransactions returns rows matching the filter, ordered ascending by
// (date, created_at, id). The trailing id term keeps the order total even if
// two rows share a timestamp.
func (s *SQLiteStore) ListTransactions(f Filter) ([]model.Transaction, error) {
	query := `
		SELECT id, account_id, txn_date, created_at, amount, balance_after,
		       counterparty, description, currency
		FROM transactions`

	var conds []string
	var args []any
	if f.AccountID != "" {
		conds = append(conds, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if !f.From.IsZero() {
		conds = append(conds, "txn_date >= ?")
		args = append(args, model.Day(f.From).Format(dayFormat))
	}
	if !f.To.IsZero() {
		conds = append(conds, "txn_date <= ?")
		args = append(args, model.Day(f.To).Format(dayFormat))
	}
	switch f.Sign {
	case SignCredit:
		conds = append(conds, "CAST(amount AS REAL) > 0")
	case SignDebit:
		conds = append(conds, "CAST(amount AS REAL) < 0")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY txn_date ASC, created_at ASC, id ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return txs, nil
}

// ListAccounts returns the distinct account IDs present in the ledger.
func (s *SQLiteStore) ListAccounts() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT account_id FROM transactions ORDER BY account_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		tx                           model.Transaction
		dateStr, createdStr          string
		amountStr, balanceStr        string
		counterparty, desc, currency string
	)
	if err := rows.Scan(&tx.ID, &tx.AccountID, &dateStr, &createdStr,
		&amountStr, &balanceStr, &counterparty, &desc, &currency); err != nil {
		return model.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	date, err := time.ParseInLocation(dayFormat, dateStr, time.UTC)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing txn_date %q: %w", dateStr, err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing created_at %q: %w", createdStr, err)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance_after %q: %w", balanceStr, err)
	}

	tx.Date = date
	tx.CreatedAt = created
	tx.Amount = amount
	tx.BalanceAfter = balance
	tx.Counterparty = counterparty
	tx.Description = desc
	tx.Currency = currency
	return tx, nil
}
