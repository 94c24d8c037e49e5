package postgres

import (
	"context"
	"fmt"

	"finance-ledger/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LoanRepo implements ports.LoanRepository.
type LoanRepo struct {
	pool Pool
}

// NewLoanRepo creates a new LoanRepo.
func NewLoanRepo(pool Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Upsert inserts a loan or updates its repayment state within a transaction.
func (r *LoanRepo) Upsert(ctx context.Context, tx pgx.Tx, l *domain.Loan) error {
	query := `INSERT INTO loans (id, person, description, total_amount, paid_amount, wallet_id, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET paid_amount = EXCLUDED.paid_amount, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`

	_, err := tx.Exec(ctx, query,
		l.ID, l.Person, l.Description, l.TotalAmount.String(), l.PaidAmount.String(),
		l.WalletID, l.Date, string(l.Status), l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert loan: %w", err)
	}
	return nil
}

// List fetches all loans in creation order.
func (r *LoanRepo) List(ctx context.Context) ([]domain.Loan, error) {
	query := `SELECT id, person, description, total_amount::text, paid_amount::text, wallet_id, date, status, created_at, updated_at
		FROM loans ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var (
			l                   domain.Loan
			total, paid, status string
		)
		err := rows.Scan(
			&l.ID, &l.Person, &l.Description, &total, &paid,
			&l.WalletID, &l.Date, &status, &l.CreatedAt, &l.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan loan row: %w", err)
		}
		if l.TotalAmount, err = parseNumeric("total_amount", total); err != nil {
			return nil, err
		}
		if l.PaidAmount, err = parseNumeric("paid_amount", paid); err != nil {
			return nil, err
		}
		l.Status = domain.LoanStatus(status)
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan rows: %w", err)
	}
	return loans, nil
}
