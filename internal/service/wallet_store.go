package service

import (
	"strings"
	"sync"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// walletEntry guards one wallet. Balance read-modify-write happens under mu.
type walletEntry struct {
	mu     sync.Mutex
	wallet domain.Wallet
}

// WalletStore owns the wallets and is the only component that mutates a balance.
type WalletStore struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]*walletEntry
	order   []uuid.UUID
	now     func() time.Time
	log     zerolog.Logger
}

// NewWalletStore creates an empty WalletStore.
func NewWalletStore(log zerolog.Logger) *WalletStore {
	return &WalletStore{
		wallets: make(map[uuid.UUID]*walletEntry),
		now:     func() time.Time { return time.Now().UTC() },
		log:     log,
	}
}

// Create adds a wallet with the given opening balance.
func (s *WalletStore) Create(name string, initialBalance decimal.Decimal) (*domain.Wallet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("wallet name is required")
	}

	now := s.now()
	entry := &walletEntry{wallet: domain.Wallet{
		ID:             uuid.New(),
		Name:           name,
		Balance:        initialBalance,
		InitialBalance: initialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}}

	s.mu.Lock()
	s.wallets[entry.wallet.ID] = entry
	s.order = append(s.order, entry.wallet.ID)
	s.mu.Unlock()

	s.log.Info().
		Str("wallet_id", entry.wallet.ID.String()).
		Str("name", name).
		Str("initial_balance", initialBalance.String()).
		Msg("wallet created")

	w := entry.wallet
	return &w, nil
}

// ApplyDelta adds a signed delta to the wallet balance.
func (s *WalletStore) ApplyDelta(walletID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	entry, ok := s.entry(walletID)
	if !ok {
		return decimal.Zero, apperror.ErrNotFound("wallet")
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.wallet.Balance = entry.wallet.Balance.Add(delta)
	entry.wallet.UpdatedAt = s.now()
	return entry.wallet.Balance, nil
}

// SetBalanceOverride replaces the balance outright. It bypasses the
// transaction history, so invariant balance == initial + deltas no longer holds
// for this wallet; the reconciliation report shows the drift.
func (s *WalletStore) SetBalanceOverride(walletID uuid.UUID, newBalance decimal.Decimal) (*domain.Wallet, error) {
	entry, ok := s.entry(walletID)
	if !ok {
		return nil, apperror.ErrNotFound("wallet")
	}

	entry.mu.Lock()
	previous := entry.wallet.Balance
	entry.wallet.Balance = newBalance
	entry.wallet.UpdatedAt = s.now()
	w := entry.wallet
	entry.mu.Unlock()

	s.log.Warn().
		Str("wallet_id", walletID.String()).
		Str("previous_balance", previous.String()).
		Str("new_balance", newBalance.String()).
		Msg("wallet balance overridden outside the transaction log")

	return &w, nil
}

// Exists reports whether the wallet is known.
func (s *WalletStore) Exists(walletID uuid.UUID) bool {
	_, ok := s.entry(walletID)
	return ok
}

// Get returns a copy of the wallet.
func (s *WalletStore) Get(walletID uuid.UUID) (*domain.Wallet, error) {
	entry, ok := s.entry(walletID)
	if !ok {
		return nil, apperror.ErrNotFound("wallet")
	}

	entry.mu.Lock()
	w := entry.wallet
	entry.mu.Unlock()
	return &w, nil
}

// List returns copies of all wallets in creation order.
func (s *WalletStore) List() []domain.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Wallet, 0, len(s.order))
	for _, id := range s.order {
		entry := s.wallets[id]
		entry.mu.Lock()
		out = append(out, entry.wallet)
		entry.mu.Unlock()
	}
	return out
}

// Restore replaces the store content with persisted wallets.
func (s *WalletStore) Restore(wallets []domain.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets = make(map[uuid.UUID]*walletEntry, len(wallets))
	s.order = make([]uuid.UUID, 0, len(wallets))
	for _, w := range wallets {
		s.wallets[w.ID] = &walletEntry{wallet: w}
		s.order = append(s.order, w.ID)
	}
}

func (s *WalletStore) entry(walletID uuid.UUID) (*walletEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.wallets[walletID]
	return entry, ok
}
