package service

import (
	"fmt"
	"strings"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// legRecorder is the part of TransactionLedger the coordinators post through.
type legRecorder interface {
	Record(req RecordRequest) (*domain.Transaction, error)
	RevertAll(ids []uuid.UUID) ([]domain.Transaction, error)
	List(filter ports.TransactionFilter) []domain.Transaction
}

// TransferCoordinator moves funds between two wallets as a pair of linked
// ledger transactions.
type TransferCoordinator struct {
	ledger legRecorder
	log    zerolog.Logger
}

// NewTransferCoordinator creates a coordinator posting through ledger.
func NewTransferCoordinator(ledger legRecorder, log zerolog.Logger) *TransferCoordinator {
	return &TransferCoordinator{ledger: ledger, log: log}
}

// MoveFunds records an expense leg on from and an income leg on to, sharing one
// transfer id. If the income leg fails the expense leg is reverted.
func (c *TransferCoordinator) MoveFunds(amount decimal.Decimal, from, to uuid.UUID, date time.Time, description string) (*ports.TransferResult, error) {
	if !amount.IsPositive() {
		return nil, apperror.Validation("amount must be greater than zero")
	}
	if from == uuid.Nil || to == uuid.Nil {
		return nil, apperror.Validation("both wallets are required")
	}
	if from == to {
		return nil, apperror.Validation("cannot transfer to the same wallet")
	}

	transferID := uuid.New()
	description = strings.TrimSpace(description)
	if description == "" {
		description = "Transfer"
	}

	outgoing, err := c.ledger.Record(RecordRequest{
		Description: description,
		Amount:      amount,
		WalletID:    from,
		CategoryID:  domain.CategoryTransfer,
		Type:        domain.TransactionTypeExpense,
		Date:        date,
		Kind:        domain.TransactionKindTransferLeg,
		TransferID:  &transferID,
	})
	if err != nil {
		return nil, err
	}

	incoming, err := c.ledger.Record(RecordRequest{
		Description: description,
		Amount:      amount,
		WalletID:    to,
		CategoryID:  domain.CategoryTransfer,
		Type:        domain.TransactionTypeIncome,
		Date:        date,
		Kind:        domain.TransactionKindTransferLeg,
		TransferID:  &transferID,
	})
	if err != nil {
		if _, revertErr := c.ledger.RevertAll([]uuid.UUID{outgoing.ID}); revertErr != nil {
			c.log.Error().
				Err(revertErr).
				Str("transfer_id", transferID.String()).
				Str("tx_id", outgoing.ID.String()).
				Msg("failed to roll back outgoing transfer leg")
			return nil, apperror.ErrTransferIncomplete(fmt.Errorf("income leg: %v; rollback: %w", err, revertErr))
		}
		c.log.Warn().
			Err(err).
			Str("transfer_id", transferID.String()).
			Msg("transfer rolled back")
		return nil, err
	}

	c.log.Info().
		Str("transfer_id", transferID.String()).
		Str("from_wallet_id", from.String()).
		Str("to_wallet_id", to.String()).
		Str("amount", amount.String()).
		Msg("transfer completed")

	return &ports.TransferResult{TransferID: transferID, Outgoing: *outgoing, Incoming: *incoming}, nil
}

// CancelTransfer reverts both legs of a transfer together.
func (c *TransferCoordinator) CancelTransfer(transferID uuid.UUID) error {
	legs := c.ledger.List(ports.TransactionFilter{TransferID: &transferID})
	if len(legs) == 0 {
		return apperror.ErrNotFound("transfer")
	}

	ids := make([]uuid.UUID, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.ID)
	}
	if _, err := c.ledger.RevertAll(ids); err != nil {
		return err
	}

	c.log.Info().
		Str("transfer_id", transferID.String()).
		Int("legs", len(ids)).
		Msg("transfer cancelled")
	return nil
}
