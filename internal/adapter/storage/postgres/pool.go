package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool is the subset of *pgxpool.Pool the repositories use. pgxmock satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor implements ports.DBTransactor.
type Transactor struct {
	pool Pool
}

// NewTransactor creates a Transactor over pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin starts a database transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}

// HealthCheck implements ports.HealthChecker. It also verifies the schema exists.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a health checker for the database.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping checks the database connection.
func (h *HealthCheck) Ping(ctx context.Context) error {
	var wallets int64
	if err := h.pool.QueryRow(ctx, "SELECT COUNT(*) FROM wallets").Scan(&wallets); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

// Name returns the component name.
func (h *HealthCheck) Name() string {
	return "postgresql"
}
