package service

import (
	"context"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	ledger     *TransactionLedger
	categories *CategoryCatalog
}

// NewReportingService creates a new reporting service.
func NewReportingService(ledger *TransactionLedger) ports.ReportingService {
	return &reportingService{
		ledger:     ledger,
		categories: ledger.Categories(),
	}
}

// Summary aggregates reportable transactions dated within [from, to).
// Transfer and loan legs only move money between places and are left out.
func (s *reportingService) Summary(ctx context.Context, from, to time.Time) (*ports.Summary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, apperror.Validation("from and to are required")
	}
	if !from.Before(to) {
		return nil, apperror.Validation("from must be before to")
	}

	_, transactions := s.ledger.View()

	totals := make(map[string]*ports.CategoryTotal)
	summary := &ports.Summary{
		From:         from,
		To:           to,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, txn := range transactions {
		if !txn.Kind.Reportable() || txn.Date.Before(from) || !txn.Date.Before(to) {
			continue
		}
		if txn.Type == domain.TransactionTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
		} else {
			summary.TotalExpense = summary.TotalExpense.Add(txn.Amount)
		}

		total, ok := totals[txn.CategoryID]
		if !ok {
			total = &ports.CategoryTotal{CategoryID: txn.CategoryID, Name: txn.CategoryID, Total: decimal.Zero}
			if cat, err := s.categories.Get(txn.CategoryID); err == nil {
				total.Name = cat.Name
				total.Kind = cat.Kind
			}
			totals[txn.CategoryID] = total
		}
		total.Total = total.Total.Add(txn.Amount)
		total.Count++
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	// Catalog order keeps the breakdown stable between calls.
	for _, cat := range s.categories.List() {
		if total, ok := totals[cat.ID]; ok {
			summary.ByCategory = append(summary.ByCategory, *total)
		}
	}
	return summary, nil
}

// MonthlySummary is Summary over one calendar month in UTC.
func (s *reportingService) MonthlySummary(ctx context.Context, year int, month time.Month) (*ports.Summary, error) {
	if month < time.January || month > time.December {
		return nil, apperror.Validationf("invalid month %d", month)
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.Summary(ctx, from, from.AddDate(0, 1, 0))
}

// Reconcile compares every wallet balance with InitialBalance plus its history.
func (s *reportingService) Reconcile(ctx context.Context) ([]ports.WalletReconciliation, error) {
	wallets, transactions := s.ledger.View()

	deltas := make(map[uuid.UUID]decimal.Decimal, len(wallets))
	for _, txn := range transactions {
		deltas[txn.WalletID] = deltas[txn.WalletID].Add(txn.SignedAmount())
	}

	out := make([]ports.WalletReconciliation, 0, len(wallets))
	for _, w := range wallets {
		expected := w.InitialBalance.Add(deltas[w.ID])
		out = append(out, ports.WalletReconciliation{
			WalletID:        w.ID,
			Name:            w.Name,
			Balance:         w.Balance,
			ExpectedBalance: expected,
			Drift:           w.Balance.Sub(expected),
		})
	}
	return out, nil
}
