package service

import (
	"strings"
	"sync"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// paymentTolerance is the largest canonical difference between a payment and the
// remaining amount that still counts as paying the loan off.
var paymentTolerance = decimal.New(1, -9)

// LoanTracker keeps receivables: money lent out of a wallet and repaid into it in parts.
type LoanTracker struct {
	mu     sync.Mutex
	ledger legRecorder
	loans  map[uuid.UUID]*domain.Loan
	order  []uuid.UUID
	now    func() time.Time
	log    zerolog.Logger
}

// NewLoanTracker creates a tracker posting principal and repayments through ledger.
func NewLoanTracker(ledger legRecorder, log zerolog.Logger) *LoanTracker {
	return &LoanTracker{
		ledger: ledger,
		loans:  make(map[uuid.UUID]*domain.Loan),
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
}

// CreateLoan disburses principal from walletID and records the receivable.
func (t *LoanTracker) CreateLoan(person, description string, principal decimal.Decimal, walletID uuid.UUID, date time.Time) (*domain.Loan, error) {
	person = strings.TrimSpace(person)
	if person == "" {
		return nil, apperror.Validation("person is required")
	}
	if !principal.IsPositive() {
		return nil, apperror.Validation("principal must be greater than zero")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	loan := &domain.Loan{
		ID:          uuid.New(),
		Person:      person,
		Description: strings.TrimSpace(description),
		TotalAmount: principal,
		PaidAmount:  decimal.Zero,
		WalletID:    walletID,
		Date:        date,
		Status:      domain.LoanStatusOutstanding,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := t.ledger.Record(RecordRequest{
		Description: "Loan to " + person,
		Amount:      principal,
		WalletID:    walletID,
		CategoryID:  domain.CategoryLoanPrincipal,
		Type:        domain.TransactionTypeExpense,
		Date:        date,
		Kind:        domain.TransactionKindLoanPrincipal,
		LoanID:      &loan.ID,
	}); err != nil {
		return nil, err
	}

	t.loans[loan.ID] = loan
	t.order = append(t.order, loan.ID)

	t.log.Info().
		Str("loan_id", loan.ID.String()).
		Str("person", person).
		Str("wallet_id", walletID.String()).
		Str("principal", principal.String()).
		Msg("loan created")

	out := *loan
	return &out, nil
}

// RecordPayment books a partial repayment. A zero date means today.
func (t *LoanTracker) RecordPayment(loanID uuid.UUID, amount decimal.Decimal, date time.Time) (*domain.Loan, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	loan, ok := t.loans[loanID]
	if !ok {
		return nil, apperror.ErrNotFound("loan")
	}
	if loan.IsPaid() {
		return nil, apperror.ErrInvalidAmount("loan is already paid")
	}
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount("payment must be greater than zero")
	}
	remaining := loan.Remaining()
	switch {
	case amount.Sub(remaining).Abs().LessThanOrEqual(paymentTolerance):
		// Display-currency payments carry division residue; settle exactly.
		amount = remaining
	case amount.GreaterThan(remaining):
		return nil, apperror.ErrInvalidAmount("payment exceeds remaining amount " + remaining.String())
	}
	if date.IsZero() {
		date = t.now().Truncate(24 * time.Hour)
	}

	if _, err := t.ledger.Record(RecordRequest{
		Description: "Repayment from " + loan.Person,
		Amount:      amount,
		WalletID:    loan.WalletID,
		CategoryID:  domain.CategoryLoanRepayment,
		Type:        domain.TransactionTypeIncome,
		Date:        date,
		Kind:        domain.TransactionKindLoanRepayment,
		LoanID:      &loan.ID,
	}); err != nil {
		return nil, err
	}

	loan.PaidAmount = loan.PaidAmount.Add(amount)
	loan.SettleStatus()
	loan.UpdatedAt = t.now()

	t.log.Info().
		Str("loan_id", loan.ID.String()).
		Str("amount", amount.String()).
		Str("paid_amount", loan.PaidAmount.String()).
		Str("status", string(loan.Status)).
		Msg("loan payment recorded")

	out := *loan
	return &out, nil
}

// Get returns a copy of the loan.
func (t *LoanTracker) Get(loanID uuid.UUID) (*domain.Loan, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	loan, ok := t.loans[loanID]
	if !ok {
		return nil, apperror.ErrNotFound("loan")
	}
	out := *loan
	return &out, nil
}

// List returns all loans in creation order.
func (t *LoanTracker) List() []domain.Loan {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.Loan, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.loans[id])
	}
	return out
}

// Restore replaces tracked loans with persisted ones.
func (t *LoanTracker) Restore(loans []domain.Loan) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.loans = make(map[uuid.UUID]*domain.Loan, len(loans))
	t.order = make([]uuid.UUID, 0, len(loans))
	for i := range loans {
		loan := loans[i]
		loan.SettleStatus()
		t.loans[loan.ID] = &loan
		t.order = append(t.order, loan.ID)
	}
}
