package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus represents the repayment state of a loan.
type LoanStatus string

const (
	LoanStatusOutstanding LoanStatus = "OUTSTANDING"
	LoanStatusPaid        LoanStatus = "PAID"
)

// Loan is money lent to a person, repaid in parts into the wallet it came from.
type Loan struct {
	ID          uuid.UUID       `json:"id"`
	Person      string          `json:"person"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	WalletID    uuid.UUID       `json:"wallet_id"`
	Date        time.Time       `json:"date"`
	Status      LoanStatus      `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Remaining returns the amount still owed.
func (l *Loan) Remaining() decimal.Decimal {
	return l.TotalAmount.Sub(l.PaidAmount)
}

// IsPaid returns true once the full principal has been repaid.
func (l *Loan) IsPaid() bool {
	return l.PaidAmount.GreaterThanOrEqual(l.TotalAmount)
}

// SettleStatus derives Status from the paid amount.
func (l *Loan) SettleStatus() {
	if l.IsPaid() {
		l.Status = LoanStatusPaid
		return
	}
	l.Status = LoanStatusOutstanding
}
