package dto

import (
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a decimal string. An empty string is zero.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperror.Validationf("%s must be a decimal number", field)
	}
	return d, nil
}

// ParseDate parses a DateLayout date. An empty string yields fallback.
func ParseDate(field, s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.Validationf("%s must be a date in YYYY-MM-DD format", field)
	}
	return t, nil
}

// ParseID parses a uuid field.
func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperror.Validationf("%s must be a valid id", field)
	}
	return id, nil
}

// Presenter renders domain values for the dashboard using the current
// currency pair and exchange rate. ToDisplay may be nil.
type Presenter struct {
	Pair      ports.CurrencyPair
	Rate      decimal.Decimal
	ToDisplay func(canonical decimal.Decimal) (decimal.Decimal, error)
}

// Wallet renders a wallet, including its balance in the display currency.
func (p Presenter) Wallet(w *domain.Wallet) WalletResponse {
	resp := WalletResponse{
		ID:               w.ID.String(),
		Name:             w.Name,
		Balance:          w.Balance.String(),
		InitialBalance:   w.InitialBalance.String(),
		BalanceFormatted: money.Format(w.Balance, p.Pair.Canonical),
		CreatedAt:        w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        w.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.ToDisplay != nil && p.Pair.Display != "" && p.Pair.Display != p.Pair.Canonical {
		if display, err := p.ToDisplay(w.Balance); err == nil {
			resp.DisplayBalance = money.Format(display, p.Pair.Display)
		}
	}
	return resp
}

// Wallets renders a wallet list.
func (p Presenter) Wallets(wallets []domain.Wallet) []WalletResponse {
	items := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		items = append(items, p.Wallet(&wallets[i]))
	}
	return items
}

// Summary renders a report.
func (p Presenter) Summary(s *ports.Summary) SummaryResponse {
	resp := SummaryResponse{
		From:         s.From.Format(DateLayout),
		To:           s.To.Format(DateLayout),
		TotalIncome:  s.TotalIncome.String(),
		TotalExpense: s.TotalExpense.String(),
		Net:          s.Net.String(),
		NetFormatted: money.Format(s.Net, p.Pair.Canonical),
		ByCategory:   make([]CategoryTotalResponse, 0, len(s.ByCategory)),
	}
	for _, ct := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryTotalResponse{
			CategoryID: ct.CategoryID,
			Name:       ct.Name,
			Kind:       string(ct.Kind),
			Total:      ct.Total.String(),
			Count:      ct.Count,
		})
	}
	return resp
}

// ExchangeRate renders the currency pair and rate.
func (p Presenter) ExchangeRate() ExchangeRateResponse {
	return ExchangeRateResponse{
		Canonical: p.Pair.Canonical,
		Display:   p.Pair.Display,
		Rate:      p.Rate.String(),
	}
}

// NewTransactionResponse renders a transaction.
func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           t.ID.String(),
		Sequence:     t.Sequence,
		Description:  t.Description,
		Amount:       t.Amount.String(),
		SignedAmount: t.SignedAmount().String(),
		Date:         t.Date.Format(DateLayout),
		WalletID:     t.WalletID.String(),
		CategoryID:   t.CategoryID,
		Type:         string(t.Type),
		Kind:         string(t.Kind),
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.TransferID != nil {
		s := t.TransferID.String()
		resp.TransferID = &s
	}
	if t.LoanID != nil {
		s := t.LoanID.String()
		resp.LoanID = &s
	}
	return resp
}

// NewTransactionList renders a transaction list.
func NewTransactionList(txns []domain.Transaction) []TransactionResponse {
	items := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, NewTransactionResponse(&txns[i]))
	}
	return items
}

// NewTransferResponse renders both legs of a transfer.
func NewTransferResponse(r *ports.TransferResult) TransferResponse {
	return TransferResponse{
		TransferID: r.TransferID.String(),
		Outgoing:   NewTransactionResponse(&r.Outgoing),
		Incoming:   NewTransactionResponse(&r.Incoming),
	}
}

// NewLoanResponse renders a loan.
func NewLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		ID:          l.ID.String(),
		Person:      l.Person,
		Description: l.Description,
		TotalAmount: l.TotalAmount.String(),
		PaidAmount:  l.PaidAmount.String(),
		Remaining:   l.Remaining().String(),
		WalletID:    l.WalletID.String(),
		Date:        l.Date.Format(DateLayout),
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewLoanList renders a loan list.
func NewLoanList(loans []domain.Loan) []LoanResponse {
	items := make([]LoanResponse, 0, len(loans))
	for i := range loans {
		items = append(items, NewLoanResponse(&loans[i]))
	}
	return items
}

// NewCategoryList renders the category catalog.
func NewCategoryList(categories []domain.Category) []CategoryResponse {
	items := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, CategoryResponse{ID: c.ID, Name: c.Name, Kind: string(c.Kind), System: c.System})
	}
	return items
}

// NewReconciliationList renders a reconciliation report.
func NewReconciliationList(rows []ports.WalletReconciliation) []ReconciliationResponse {
	items := make([]ReconciliationResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, ReconciliationResponse{
			WalletID:        r.WalletID.String(),
			Name:            r.Name,
			Balance:         r.Balance.String(),
			ExpectedBalance: r.ExpectedBalance.String(),
			Drift:           r.Drift.String(),
		})
	}
	return items
}
