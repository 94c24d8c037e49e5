package dto

// Dates travel as calendar days in DateLayout. Amounts travel as decimal
// strings so no precision is lost in JSON numbers.

// ---- Requests ----

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	InitialBalance string `json:"initial_balance" binding:"omitempty,decimal"`
	Currency       string `json:"currency" binding:"omitempty,currency_code"`
}

// SetWalletBalanceRequest is the request body for the balance override.
type SetWalletBalanceRequest struct {
	Balance  string `json:"balance" binding:"required,decimal"`
	Currency string `json:"currency" binding:"omitempty,currency_code"`
}

// CreateTransactionRequest is the request body for a manual transaction.
type CreateTransactionRequest struct {
	Description string `json:"description" binding:"max=255"`
	Amount      string `json:"amount" binding:"required,decimal"`
	Currency    string `json:"currency" binding:"omitempty,currency_code"`
	Date        string `json:"date" binding:"omitempty,ledger_date"`
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	CategoryID  string `json:"category_id" binding:"required,category_id"`
	Type        string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}

// CreateTransferRequest is the request body for moving funds between wallets.
type CreateTransferRequest struct {
	Amount       string `json:"amount" binding:"required,decimal"`
	Currency     string `json:"currency" binding:"omitempty,currency_code"`
	FromWalletID string `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID   string `json:"to_wallet_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"omitempty,ledger_date"`
	Description  string `json:"description" binding:"max=255"`
}

// CreateLoanRequest is the request body for lending money.
type CreateLoanRequest struct {
	Person      string `json:"person" binding:"required,max=100"`
	Description string `json:"description" binding:"max=255"`
	Amount      string `json:"amount" binding:"required,decimal"`
	Currency    string `json:"currency" binding:"omitempty,currency_code"`
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"omitempty,ledger_date"`
}

// LoanPaymentRequest is the request body for a loan repayment.
type LoanPaymentRequest struct {
	Amount   string `json:"amount" binding:"required,decimal"`
	Currency string `json:"currency" binding:"omitempty,currency_code"`
	Date     string `json:"date" binding:"omitempty,ledger_date"`
}

// DistributeIncomeRequest is the request body for posting income.
type DistributeIncomeRequest struct {
	Amount      string `json:"amount" binding:"required,decimal"`
	Currency    string `json:"currency" binding:"omitempty,currency_code"`
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"omitempty,ledger_date"`
	Description string `json:"description" binding:"max=255"`
	CategoryID  string `json:"category_id" binding:"omitempty,category_id"`
}

// SetExchangeRateRequest is the request body for changing the exchange rate.
type SetExchangeRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

// ---- Responses ----

// WalletResponse is the response body for a wallet.
type WalletResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Balance          string `json:"balance"`
	InitialBalance   string `json:"initial_balance"`
	BalanceFormatted string `json:"balance_formatted"`
	DisplayBalance   string `json:"display_balance,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// TransactionResponse is the response body for a ledger transaction.
type TransactionResponse struct {
	ID           string  `json:"id"`
	Sequence     int64   `json:"sequence"`
	Description  string  `json:"description"`
	Amount       string  `json:"amount"`
	SignedAmount string  `json:"signed_amount"`
	Date         string  `json:"date"`
	WalletID     string  `json:"wallet_id"`
	CategoryID   string  `json:"category_id"`
	Type         string  `json:"type"`
	Kind         string  `json:"kind"`
	TransferID   *string `json:"transfer_id,omitempty"`
	LoanID       *string `json:"loan_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// TransferResponse is the response body for a completed transfer.
type TransferResponse struct {
	TransferID string              `json:"transfer_id"`
	Outgoing   TransactionResponse `json:"outgoing"`
	Incoming   TransactionResponse `json:"incoming"`
}

// LoanResponse is the response body for a loan.
type LoanResponse struct {
	ID          string `json:"id"`
	Person      string `json:"person"`
	Description string `json:"description"`
	TotalAmount string `json:"total_amount"`
	PaidAmount  string `json:"paid_amount"`
	Remaining   string `json:"remaining"`
	WalletID    string `json:"wallet_id"`
	Date        string `json:"date"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ExchangeRateResponse is the response body for the exchange rate.
type ExchangeRateResponse struct {
	Canonical string `json:"canonical_currency"`
	Display   string `json:"display_currency"`
	Rate      string `json:"rate"`
}

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	System bool   `json:"system"`
}

// SummaryResponse is the response body for an income/expense report.
type SummaryResponse struct {
	From         string                  `json:"from"`
	To           string                  `json:"to"`
	TotalIncome  string                  `json:"total_income"`
	TotalExpense string                  `json:"total_expense"`
	Net          string                  `json:"net"`
	NetFormatted string                  `json:"net_formatted"`
	ByCategory   []CategoryTotalResponse `json:"by_category"`
}

// CategoryTotalResponse is one category row of a SummaryResponse.
type CategoryTotalResponse struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Total      string `json:"total"`
	Count      int    `json:"count"`
}

// ReconciliationResponse is the response body for one reconciled wallet.
type ReconciliationResponse struct {
	WalletID        string `json:"wallet_id"`
	Name            string `json:"name"`
	Balance         string `json:"balance"`
	ExpectedBalance string `json:"expected_balance"`
	Drift           string `json:"drift"`
}
