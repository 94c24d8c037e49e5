package postgres

import (
	"context"
	"fmt"

	"finance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// DeleteAll clears the history table so it can be rewritten from a snapshot.
func (r *TransactionRepo) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("delete transactions: %w", err)
	}
	return nil
}

// Create inserts a transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, sequence, description, amount, date, wallet_id, category_id,
		type, kind, transfer_id, loan_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.Sequence, t.Description, t.Amount.String(), t.Date, t.WalletID, t.CategoryID,
		string(t.Type), string(t.Kind), t.TransferID, t.LoanID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List fetches the whole history in recording order.
func (r *TransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT id, sequence, description, amount::text, date, wallet_id, category_id,
		type, kind, transfer_id, loan_id, created_at
		FROM transactions ORDER BY sequence`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var (
			t                 domain.Transaction
			amount, typ, kind string
		)
		err := rows.Scan(
			&t.ID, &t.Sequence, &t.Description, &amount, &t.Date, &t.WalletID, &t.CategoryID,
			&typ, &kind, &t.TransferID, &t.LoanID, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		if t.Amount, err = parseNumeric("amount", amount); err != nil {
			return nil, err
		}
		t.Type = domain.TransactionType(typ)
		t.Kind = domain.TransactionKind(kind)
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}
