package ports

import (
	"context"
	"time"

	"finance-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// FinanceService is the ledger API consumed by the dashboard UI.
// Amounts arrive in the currency named by Currency and are stored canonical.
type FinanceService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	SetWalletBalance(ctx context.Context, req SetWalletBalanceRequest) (*domain.Wallet, error)

	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	RevertTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*TransferResult, error)
	CancelTransfer(ctx context.Context, transferID uuid.UUID) error

	CreateLoan(ctx context.Context, req CreateLoanRequest) (*domain.Loan, error)
	RecordLoanPayment(ctx context.Context, req RecordLoanPaymentRequest) (*domain.Loan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListLoans(ctx context.Context) ([]domain.Loan, error)

	DistributeIncome(ctx context.Context, req DistributeIncomeRequest) (*domain.Transaction, error)

	SetExchangeRate(ctx context.Context, rate decimal.Decimal) error
	ExchangeRate() decimal.Decimal
	DisplayAmount(canonical decimal.Decimal) (decimal.Decimal, error)
	Currencies() CurrencyPair
	Categories() []domain.Category
}

// CurrencyPair names the two units the ledger understands.
type CurrencyPair struct {
	Canonical string
	Display   string
}

// CreateWalletRequest holds input for wallet creation.
type CreateWalletRequest struct {
	Name           string
	InitialBalance decimal.Decimal
	Currency       string
}

// SetWalletBalanceRequest holds input for the balance override escape hatch.
type SetWalletBalanceRequest struct {
	WalletID   uuid.UUID
	NewBalance decimal.Decimal
	Currency   string
}

// CreateTransactionRequest holds input for a manual transaction.
type CreateTransactionRequest struct {
	Description string
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	WalletID    uuid.UUID
	CategoryID  string
	Type        domain.TransactionType
	RequestKey  string // Optional; rejects replays of the same UI command
}

// CreateTransferRequest holds input for moving funds between wallets.
type CreateTransferRequest struct {
	Amount       decimal.Decimal
	Currency     string
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	Date         time.Time
	Description  string
	RequestKey   string
}

// TransferResult holds both legs of a transfer.
type TransferResult struct {
	TransferID uuid.UUID
	Outgoing   domain.Transaction
	Incoming   domain.Transaction
}

// CreateLoanRequest holds input for lending money.
type CreateLoanRequest struct {
	Person      string
	Description string
	Amount      decimal.Decimal
	Currency    string
	WalletID    uuid.UUID
	Date        time.Time
	RequestKey  string
}

// RecordLoanPaymentRequest holds input for a partial repayment.
type RecordLoanPaymentRequest struct {
	LoanID     uuid.UUID
	Amount     decimal.Decimal
	Currency   string
	Date       time.Time // Zero = today
	RequestKey string
}

// DistributeIncomeRequest holds input for posting income into a wallet.
type DistributeIncomeRequest struct {
	Amount      decimal.Decimal
	Currency    string
	WalletID    uuid.UUID
	Date        time.Time
	Description string
	CategoryID  string // Empty = configured default income category
	RequestKey  string
}

// TransactionFilter narrows a transaction listing. Zero fields do not filter.
// Date bounds are half-open: From <= Date < To.
type TransactionFilter struct {
	WalletID   *uuid.UUID
	Kind       *domain.TransactionKind
	TransferID *uuid.UUID
	LoanID     *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// ReportingService aggregates the ledger for dashboards.
type ReportingService interface {
	Summary(ctx context.Context, from, to time.Time) (*Summary, error)
	MonthlySummary(ctx context.Context, year int, month time.Month) (*Summary, error)
	Reconcile(ctx context.Context) ([]WalletReconciliation, error)
}

// Summary holds income/expense totals for a date range.
type Summary struct {
	From         time.Time
	To           time.Time
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Net          decimal.Decimal
	ByCategory   []CategoryTotal
}

// CategoryTotal holds the aggregate of one category.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Kind       domain.CategoryKind
	Total      decimal.Decimal
	Count      int
}

// WalletReconciliation compares a wallet balance with its transaction history.
type WalletReconciliation struct {
	WalletID        uuid.UUID
	Name            string
	Balance         decimal.Decimal
	ExpectedBalance decimal.Decimal
	Drift           decimal.Decimal // Non-zero only after a balance override
}
