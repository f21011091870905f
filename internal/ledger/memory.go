package ledger

import (
	"sort"

	"github.com/ledgersight/ledgersight/internal/model"
)

// MemoryStore is an in-memory Store used by tests and the seeder. It applies
// the same (date, created_at) ordering contract as the SQLite store.
type MemoryStore struct {
	txs []model.Transaction
}

// NewMemoryStore creates a MemoryStore preloaded with the given transactions.
func NewMemoryStore(txs ...model.Transaction) *MemoryStore {
	s := &MemoryStore{}
	s.InsertTransactions(txs)
	return s
}

// InsertTransactions appends rows to the in-memory ledger.
func (s *MemoryStore) InsertTransactions(txs []model.Transaction) error {
	s.txs = append(s.txs, txs...)
	sort.SliceStable(s.txs, func(i, j int) bool {
		return s.txs[i].Before(s.txs[j])
	})
	return nil
}

// ListTransactions returns matching rows ordered by (date, created_at).
func (s *MemoryStore) ListTransactions(f Filter) ([]model.Transaction, error) {
	var out []model.Transaction
	for _, tx := range s.txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ListAccounts returns the distinct account IDs present in the ledger.
func (s *MemoryStore) ListAccounts() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, tx := range s.txs {
		if !seen[tx.AccountID] {
			seen[tx.AccountID] = true
			ids = append(ids, tx.AccountID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
