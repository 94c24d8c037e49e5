package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// schema is applied in order. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
		id              UUID PRIMARY KEY,
		name            TEXT NOT NULL,
		balance         NUMERIC NOT NULL,
		initial_balance NUMERIC NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id          UUID PRIMARY KEY,
		sequence    BIGINT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		amount      NUMERIC NOT NULL CHECK (amount > 0),
		date        TIMESTAMPTZ NOT NULL,
		wallet_id   UUID NOT NULL REFERENCES wallets(id),
		category_id TEXT NOT NULL,
		type        TEXT NOT NULL,
		kind        TEXT NOT NULL,
		transfer_id UUID,
		loan_id     UUID,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_wallet ON transactions (wallet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_transfer ON transactions (transfer_id) WHERE transfer_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS loans (
		id           UUID PRIMARY KEY,
		person       TEXT NOT NULL,
		description  TEXT NOT NULL,
		total_amount NUMERIC NOT NULL CHECK (total_amount > 0),
		paid_amount  NUMERIC NOT NULL CHECK (paid_amount >= 0 AND paid_amount <= total_amount),
		wallet_id    UUID NOT NULL REFERENCES wallets(id),
		date         TIMESTAMPTZ NOT NULL,
		status       TEXT NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the ledger schema.
func Migrate(ctx context.Context, pool Pool, log zerolog.Logger) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	log.Info().Int("statements", len(schema)).Msg("database schema up to date")
	return nil
}
