package postgres

import (
	"context"
	"fmt"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// SnapshotStore implements ports.SnapshotStore over the relational schema.
// A save writes every table in one database transaction.
type SnapshotStore struct {
	transactor   ports.DBTransactor
	walletRepo   ports.WalletRepository
	txRepo       ports.TransactionRepository
	loanRepo     ports.LoanRepository
	settingsRepo ports.SettingsRepository
	log          zerolog.Logger
}

// NewSnapshotStore creates a SnapshotStore from its repositories.
func NewSnapshotStore(
	transactor ports.DBTransactor,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	loanRepo ports.LoanRepository,
	settingsRepo ports.SettingsRepository,
	log zerolog.Logger,
) *SnapshotStore {
	return &SnapshotStore{
		transactor:   transactor,
		walletRepo:   walletRepo,
		txRepo:       txRepo,
		loanRepo:     loanRepo,
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// NewSnapshotStoreFromPool wires the default repositories on pool.
func NewSnapshotStoreFromPool(pool Pool, log zerolog.Logger) *SnapshotStore {
	return NewSnapshotStore(
		NewTransactor(pool),
		NewWalletRepo(pool),
		NewTransactionRepo(pool),
		NewLoanRepo(pool),
		NewSettingsRepo(pool),
		log,
	)
}

// Save writes the snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	for i := range snapshot.Wallets {
		if err := s.walletRepo.Upsert(ctx, dbTx, &snapshot.Wallets[i]); err != nil {
			return err
		}
	}
	if err := s.txRepo.DeleteAll(ctx, dbTx); err != nil {
		return err
	}
	for i := range snapshot.Transactions {
		if err := s.txRepo.Create(ctx, dbTx, &snapshot.Transactions[i]); err != nil {
			return err
		}
	}
	for i := range snapshot.Loans {
		if err := s.loanRepo.Upsert(ctx, dbTx, &snapshot.Loans[i]); err != nil {
			return err
		}
	}
	if err := s.settingsRepo.SetExchangeRate(ctx, dbTx, snapshot.ExchangeRate); err != nil {
		return err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.log.Debug().
		Int("wallets", len(snapshot.Wallets)).
		Int("transactions", len(snapshot.Transactions)).
		Int("loans", len(snapshot.Loans)).
		Msg("ledger snapshot saved to postgres")
	return nil
}

// Load reads the stored ledger. It returns nil, nil when the tables are empty.
func (s *SnapshotStore) Load(ctx context.Context) (*domain.LedgerSnapshot, error) {
	wallets, err := s.walletRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	transactions, err := s.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := s.settingsRepo.GetExchangeRate(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.LedgerSnapshot{
		Wallets:      wallets,
		Transactions: transactions,
		Loans:        loans,
		SavedAt:      time.Now().UTC(),
	}
	if rate != nil {
		snapshot.ExchangeRate = *rate
	}
	if snapshot.IsEmpty() && rate == nil {
		return nil, nil
	}
	return snapshot, nil
}
