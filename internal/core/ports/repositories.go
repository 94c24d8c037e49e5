package ports

import (
	"context"
	"time"

	"finance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// SnapshotStore persists the whole ledger state. Load returns nil, nil when
// nothing has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot *domain.LedgerSnapshot) error
	Load(ctx context.Context) (*domain.LedgerSnapshot, error)
}

// CommandGuard rejects UI commands submitted twice (double clicks, retried requests).
type CommandGuard interface {
	// Claim atomically records key. Returns true if the key is new, false if
	// it was already claimed within ttl.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so the command may be submitted again.
	Release(ctx context.Context, key string) error
}

// WalletRepository defines relational persistence for wallets.
type WalletRepository interface {
	Upsert(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	List(ctx context.Context) ([]domain.Wallet, error)
}

// TransactionRepository defines relational persistence for transactions.
// Transactions are replaced wholesale because reverts delete history rows.
type TransactionRepository interface {
	DeleteAll(ctx context.Context, tx pgx.Tx) error
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	List(ctx context.Context) ([]domain.Transaction, error)
}

// LoanRepository defines relational persistence for loans.
type LoanRepository interface {
	Upsert(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error
	List(ctx context.Context) ([]domain.Loan, error)
}

// SettingsRepository persists single-valued ledger settings.
type SettingsRepository interface {
	SetExchangeRate(ctx context.Context, tx pgx.Tx, rate decimal.Decimal) error
	// GetExchangeRate returns nil when no rate has been stored.
	GetExchangeRate(ctx context.Context) (*decimal.Decimal, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
