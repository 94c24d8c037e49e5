package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const settingExchangeRate = "exchange_rate"

// SettingsRepo implements ports.SettingsRepository over a key/value table.
type SettingsRepo struct {
	pool Pool
}

// NewSettingsRepo creates a new SettingsRepo.
func NewSettingsRepo(pool Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// SetExchangeRate stores the display-per-canonical rate within a transaction.
func (r *SettingsRepo) SetExchangeRate(ctx context.Context, tx pgx.Tx, rate decimal.Decimal) error {
	query := `INSERT INTO ledger_settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := tx.Exec(ctx, query, settingExchangeRate, rate.String()); err != nil {
		return fmt.Errorf("set exchange rate: %w", err)
	}
	return nil
}

// GetExchangeRate returns the stored rate, or nil if none was saved.
func (r *SettingsRepo) GetExchangeRate(ctx context.Context) (*decimal.Decimal, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM ledger_settings WHERE key = $1`, settingExchangeRate).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exchange rate: %w", err)
	}
	rate, err := parseNumeric(settingExchangeRate, value)
	if err != nil {
		return nil, err
	}
	return &rate, nil
}
