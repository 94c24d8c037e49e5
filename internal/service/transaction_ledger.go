package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RecordRequest holds validated-at-record input for one ledger transaction.
// Amounts are canonical.
type RecordRequest struct {
	Description string
	Amount      decimal.Decimal
	WalletID    uuid.UUID
	CategoryID  string
	Type        domain.TransactionType
	Date        time.Time
	Kind        domain.TransactionKind // Empty = MANUAL
	TransferID  *uuid.UUID
	LoanID      *uuid.UUID
}

// TransactionLedger is the single source of truth for transaction history.
// History is kept in recording order; Date is user data and may be backdated.
type TransactionLedger struct {
	mu         sync.Mutex
	wallets    *WalletStore
	categories *CategoryCatalog
	history    []*domain.Transaction
	byID       map[uuid.UUID]*domain.Transaction
	seq        int64
	now        func() time.Time
	log        zerolog.Logger
}

// NewTransactionLedger creates an empty ledger over the given wallets.
func NewTransactionLedger(wallets *WalletStore, categories *CategoryCatalog, log zerolog.Logger) *TransactionLedger {
	return &TransactionLedger{
		wallets:    wallets,
		categories: categories,
		byID:       make(map[uuid.UUID]*domain.Transaction),
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// Record validates req, applies its delta to the wallet and appends it to history.
// Nothing changes when validation fails.
func (l *TransactionLedger) Record(req RecordRequest) (*domain.Transaction, error) {
	if req.Kind == "" {
		req.Kind = domain.TransactionKindManual
	}
	category, err := l.validate(req)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = category.Name
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	txn := &domain.Transaction{
		ID:          uuid.New(),
		Sequence:    l.seq + 1,
		Description: description,
		Amount:      req.Amount,
		Date:        req.Date,
		WalletID:    req.WalletID,
		CategoryID:  category.ID,
		Type:        req.Type,
		Kind:        req.Kind,
		TransferID:  req.TransferID,
		LoanID:      req.LoanID,
		CreatedAt:   l.now(),
	}

	balance, err := l.wallets.ApplyDelta(txn.WalletID, txn.SignedAmount())
	if err != nil {
		return nil, err
	}

	l.seq = txn.Sequence
	l.history = append(l.history, txn)
	l.byID[txn.ID] = txn

	l.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("wallet_id", txn.WalletID.String()).
		Str("type", string(txn.Type)).
		Str("kind", string(txn.Kind)).
		Str("amount", txn.Amount.String()).
		Str("balance", balance.String()).
		Msg("transaction recorded")

	out := *txn
	return &out, nil
}

// Revert undoes exactly the delta a transaction applied and removes it from
// history. Reverting an unknown or already reverted transaction is NotFound.
func (l *TransactionLedger) Revert(id uuid.UUID) (*domain.Transaction, error) {
	reverted, err := l.RevertAll([]uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	return &reverted[0], nil
}

// RevertAll reverts several transactions as one step: either every id is known
// and all are reverted, or nothing changes.
func (l *TransactionLedger) RevertAll(ids []uuid.UUID) ([]domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if _, ok := l.byID[id]; !ok || seen[id] {
			return nil, apperror.ErrNotFound("transaction")
		}
		seen[id] = true
	}

	for _, id := range ids {
		if !l.wallets.Exists(l.byID[id].WalletID) {
			return nil, apperror.InternalError(fmt.Errorf("revert %s: wallet %s is missing", id, l.byID[id].WalletID))
		}
	}

	balances := make([]decimal.Decimal, 0, len(ids))
	for i, id := range ids {
		txn := l.byID[id]
		balance, err := l.wallets.ApplyDelta(txn.WalletID, txn.SignedAmount().Neg())
		if err != nil {
			l.restoreDeltas(ids[:i])
			return nil, apperror.InternalError(fmt.Errorf("revert %s: %w", id, err))
		}
		balances = append(balances, balance)
	}

	reverted := make([]domain.Transaction, 0, len(ids))
	for i, id := range ids {
		txn := l.byID[id]
		l.remove(id)
		reverted = append(reverted, *txn)

		l.log.Info().
			Str("tx_id", id.String()).
			Str("wallet_id", txn.WalletID.String()).
			Str("amount", txn.Amount.String()).
			Str("balance", balances[i].String()).
			Msg("transaction reverted")
	}
	return reverted, nil
}

// restoreDeltas re-applies the deltas of transactions whose revert was undone. Caller holds l.mu.
func (l *TransactionLedger) restoreDeltas(ids []uuid.UUID) {
	for _, id := range ids {
		txn := l.byID[id]
		if _, err := l.wallets.ApplyDelta(txn.WalletID, txn.SignedAmount()); err != nil {
			l.log.Error().Err(err).Str("tx_id", id.String()).Msg("failed to restore balance after aborted revert")
		}
	}
}

// Get returns a copy of a recorded transaction.
func (l *TransactionLedger) Get(id uuid.UUID) (*domain.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txn, ok := l.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound("transaction")
	}
	out := *txn
	return &out, nil
}

// List returns matching transactions in recording order.
func (l *TransactionLedger) List(filter ports.TransactionFilter) []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Transaction, 0, len(l.history))
	for _, txn := range l.history {
		if matches(txn, filter) {
			out = append(out, *txn)
		}
	}
	return out
}

// Restore replaces history with persisted transactions without touching balances;
// persisted balances already include them.
func (l *TransactionLedger) Restore(transactions []domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Sequence < sorted[j].Sequence })

	l.history = make([]*domain.Transaction, 0, len(sorted))
	l.byID = make(map[uuid.UUID]*domain.Transaction, len(sorted))
	l.seq = 0
	for i := range sorted {
		txn := &sorted[i]
		l.history = append(l.history, txn)
		l.byID[txn.ID] = txn
		if txn.Sequence > l.seq {
			l.seq = txn.Sequence
		}
	}
}

// Categories exposes the catalog used for validation.
func (l *TransactionLedger) Categories() *CategoryCatalog {
	return l.categories
}

func (l *TransactionLedger) validate(req RecordRequest) (*domain.Category, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be greater than zero")
	}
	if !req.Type.Valid() {
		return nil, apperror.Validationf("invalid transaction type %q", req.Type)
	}
	if req.WalletID == uuid.Nil {
		return nil, apperror.Validation("wallet is required")
	}
	if req.CategoryID == "" {
		return nil, apperror.Validation("category is required")
	}
	if req.Date.IsZero() {
		return nil, apperror.Validation("date is required")
	}
	if !l.wallets.Exists(req.WalletID) {
		return nil, apperror.ErrNotFound("wallet")
	}
	category, err := l.categories.Get(req.CategoryID)
	if err != nil {
		return nil, err
	}

	switch req.Kind {
	case domain.TransactionKindManual, domain.TransactionKindDistribution:
		if !category.Accepts(req.Type) {
			return nil, apperror.Validationf("category %q cannot be used for %s transactions", category.ID, strings.ToLower(string(req.Type)))
		}
	case domain.TransactionKindTransferLeg:
		if req.TransferID == nil {
			return nil, apperror.Validation("transfer leg requires a transfer id")
		}
		if category.ID != domain.CategoryTransfer {
			return nil, apperror.Validation("transfer leg must use the transfer category")
		}
	case domain.TransactionKindLoanPrincipal, domain.TransactionKindLoanRepayment:
		if req.LoanID == nil {
			return nil, apperror.Validation("loan transaction requires a loan id")
		}
		if category.ID != loanCategory(req.Kind) {
			return nil, apperror.Validationf("%s must use the %s category", strings.ToLower(string(req.Kind)), loanCategory(req.Kind))
		}
	default:
		return nil, apperror.Validationf("invalid transaction kind %q", req.Kind)
	}
	return category, nil
}

// remove deletes id from history. Caller holds l.mu.
func (l *TransactionLedger) remove(id uuid.UUID) {
	delete(l.byID, id)
	for i, txn := range l.history {
		if txn.ID == id {
			l.history = append(l.history[:i], l.history[i+1:]...)
			return
		}
	}
}

func loanCategory(kind domain.TransactionKind) string {
	if kind == domain.TransactionKindLoanPrincipal {
		return domain.CategoryLoanPrincipal
	}
	return domain.CategoryLoanRepayment
}

func matches(txn *domain.Transaction, f ports.TransactionFilter) bool {
	if f.WalletID != nil && txn.WalletID != *f.WalletID {
		return false
	}
	if f.Kind != nil && txn.Kind != *f.Kind {
		return false
	}
	if f.TransferID != nil && (txn.TransferID == nil || *txn.TransferID != *f.TransferID) {
		return false
	}
	if f.LoanID != nil && (txn.LoanID == nil || *txn.LoanID != *f.LoanID) {
		return false
	}
	if f.From != nil && txn.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !txn.Date.Before(*f.To) {
		return false
	}
	return true
}

// View returns wallets and history as one consistent read. No record or revert
// can interleave between the two.
func (l *TransactionLedger) View() ([]domain.Wallet, []domain.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	transactions := make([]domain.Transaction, 0, len(l.history))
	for _, txn := range l.history {
		transactions = append(transactions, *txn)
	}
	return l.wallets.List(), transactions
}
