package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a balance change.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionKind records which operation produced a transaction.
type TransactionKind string

const (
	TransactionKindManual        TransactionKind = "MANUAL"
	TransactionKindTransferLeg   TransactionKind = "TRANSFER_LEG"
	TransactionKindLoanPrincipal TransactionKind = "LOAN_PRINCIPAL"
	TransactionKindLoanRepayment TransactionKind = "LOAN_REPAYMENT"
	TransactionKindDistribution  TransactionKind = "DISTRIBUTION"
)

// Reportable reports whether transactions of this kind count towards
// income/expense aggregates. Transfer and loan legs only move money around.
func (k TransactionKind) Reportable() bool {
	return k == TransactionKindManual || k == TransactionKindDistribution
}

// Transaction is a signed balance-affecting record against one wallet.
// Amount is always positive and in the canonical currency; Type gives the sign.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Sequence    int64           `json:"sequence"` // Recording order, independent of Date
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"` // User-chosen, may be backdated
	WalletID    uuid.UUID       `json:"wallet_id"`
	CategoryID  string          `json:"category_id"`
	Type        TransactionType `json:"type"`
	Kind        TransactionKind `json:"kind"`
	TransferID  *uuid.UUID      `json:"transfer_id,omitempty"`
	LoanID      *uuid.UUID      `json:"loan_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SignedAmount returns the delta this transaction applies to its wallet.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsTransferLeg returns true if the transaction is one side of a transfer.
func (t *Transaction) IsTransferLeg() bool {
	return t.Kind == TransactionKindTransferLeg && t.TransferID != nil
}

// IsLoanLinked returns true if the transaction belongs to a loan.
func (t *Transaction) IsLoanLinked() bool {
	return t.LoanID != nil
}
