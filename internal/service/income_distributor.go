package service

import (
	"time"

	"finance-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// IncomeDistributor posts income into a chosen wallet.
type IncomeDistributor struct {
	ledger          legRecorder
	defaultCategory string
	log             zerolog.Logger
}

// NewIncomeDistributor creates a distributor. An empty defaultCategory means DefaultIncomeCategory.
func NewIncomeDistributor(ledger legRecorder, defaultCategory string, log zerolog.Logger) *IncomeDistributor {
	if defaultCategory == "" {
		defaultCategory = DefaultIncomeCategory
	}
	return &IncomeDistributor{ledger: ledger, defaultCategory: defaultCategory, log: log}
}

// Distribute records an income of kind DISTRIBUTION on walletID.
func (d *IncomeDistributor) Distribute(amount decimal.Decimal, walletID uuid.UUID, date time.Time, description, categoryID string) (*domain.Transaction, error) {
	if categoryID == "" {
		categoryID = d.defaultCategory
	}

	txn, err := d.ledger.Record(RecordRequest{
		Description: description,
		Amount:      amount,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Type:        domain.TransactionTypeIncome,
		Date:        date,
		Kind:        domain.TransactionKindDistribution,
	})
	if err != nil {
		return nil, err
	}

	d.log.Debug().
		Str("tx_id", txn.ID.String()).
		Str("wallet_id", walletID.String()).
		Msg("income distributed")
	return txn, nil
}
