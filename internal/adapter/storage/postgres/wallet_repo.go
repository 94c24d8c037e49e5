package postgres

import (
	"context"
	"fmt"

	"finance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Upsert inserts a wallet or updates its mutable fields within a transaction.
func (r *WalletRepo) Upsert(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, name, balance, initial_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query,
		w.ID, w.Name, w.Balance.String(), w.InitialBalance.String(), w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

// List fetches all wallets in creation order.
func (r *WalletRepo) List(ctx context.Context) ([]domain.Wallet, error) {
	query := `SELECT id, name, balance::text, initial_balance::text, created_at, updated_at
		FROM wallets ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var (
			w                domain.Wallet
			balance, initial string
		)
		if err := rows.Scan(&w.ID, &w.Name, &balance, &initial, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		if w.Balance, err = parseNumeric("balance", balance); err != nil {
			return nil, err
		}
		if w.InitialBalance, err = parseNumeric("initial_balance", initial); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}
