package memory

import (
	"context"
	"sync"

	"finance-ledger/internal/core/domain"
)

// SnapshotStore keeps the last saved snapshot in process memory.
// State is lost on exit.
type SnapshotStore struct {
	mu       sync.RWMutex
	snapshot *domain.LedgerSnapshot
}

// NewSnapshotStore creates an empty in-process store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Save keeps a deep copy of snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	c := clone(snapshot)
	s.mu.Lock()
	s.snapshot = c
	s.mu.Unlock()
	return nil
}

// Load returns a copy of the last saved snapshot, or nil when nothing was saved.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.LedgerSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, nil
	}
	return clone(s.snapshot), nil
}

// clone copies the slices so callers cannot alias stored state.
func clone(snapshot *domain.LedgerSnapshot) *domain.LedgerSnapshot {
	c := *snapshot
	c.Wallets = append([]domain.Wallet(nil), snapshot.Wallets...)
	c.Transactions = append([]domain.Transaction(nil), snapshot.Transactions...)
	c.Loans = append([]domain.Loan(nil), snapshot.Loans...)
	return &c
}
