package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/internal/core/ports/mocks"
	"finance-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router    *gin.Engine
	finance   *mocks.MockFinanceService
	reporting *mocks.MockReportingService
}

func newTestAPI(t *testing.T, checkers ...ports.HealthChecker) *testAPI {
	ctrl := gomock.NewController(t)
	fin := mocks.NewMockFinanceService(ctrl)
	rep := mocks.NewMockReportingService(ctrl)

	fin.EXPECT().Currencies().Return(ports.CurrencyPair{Canonical: "USD", Display: "JPY"}).AnyTimes()
	fin.EXPECT().ExchangeRate().Return(decimal.NewFromInt(150)).AnyTimes()
	fin.EXPECT().DisplayAmount(gomock.Any()).DoAndReturn(func(d decimal.Decimal) (decimal.Decimal, error) {
		return d.Mul(decimal.NewFromInt(150)), nil
	}).AnyTimes()

	return &testAPI{
		router: SetupRouter(RouterDeps{
			FinanceSvc:     fin,
			ReportingSvc:   rep,
			HealthCheckers: checkers,
			Logger:         zerolog.Nop(),
		}),
		finance:   fin,
		reporting: rep,
	}
}

func (a *testAPI) do(method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].([]interface{})
	require.True(t, ok, "response has no data list: %s", w.Body.String())
	return data
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	code, _ := resp["error_code"].(string)
	return code
}

func sampleWallet(balance string) *domain.Wallet {
	return &domain.Wallet{
		ID:             uuid.New(),
		Name:           "Cash",
		Balance:        decimal.RequireFromString(balance),
		InitialBalance: decimal.RequireFromString(balance),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// --- Wallets ---

func TestWallet_Create(t *testing.T) {
	api := newTestAPI(t)
	wallet := sampleWallet("100")

	api.finance.EXPECT().CreateWallet(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
			assert.Equal(t, "Cash", req.Name)
			assert.True(t, req.InitialBalance.Equal(decimal.NewFromInt(100)))
			assert.Equal(t, "USD", req.Currency)
			return wallet, nil
		})

	w := api.do(http.MethodPost, "/api/v1/wallets", map[string]string{
		"name": "  Cash ", "initial_balance": "100", "currency": "USD",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, wallet.ID.String(), data["id"])
	assert.Equal(t, "100", data["balance"])
	assert.Equal(t, "$100.00", data["balance_formatted"])
	assert.Equal(t, "¥15,000", data["display_balance"])
}

func TestWallet_Create_ValidationError(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/wallets", map[string]string{"initial_balance": "lots"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, w))
}

func TestWallet_Get_NotFound(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()

	api.finance.EXPECT().GetWallet(gomock.Any(), id).Return(nil, apperror.ErrNotFound("wallet"))

	w := api.do(http.MethodGet, "/api/v1/wallets/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperror.CodeNotFound, errorCode(t, w))
}

func TestWallet_Get_BadID(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/wallets/cash", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWallet_List(t *testing.T) {
	api := newTestAPI(t)
	api.finance.EXPECT().ListWallets(gomock.Any()).Return([]domain.Wallet{*sampleWallet("1"), *sampleWallet("2")}, nil)

	w := api.do(http.MethodGet, "/api/v1/wallets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}

func TestWallet_SetBalance(t *testing.T) {
	api := newTestAPI(t)
	wallet := sampleWallet("42")

	api.finance.EXPECT().SetWalletBalance(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.SetWalletBalanceRequest) (*domain.Wallet, error) {
			assert.Equal(t, wallet.ID, req.WalletID)
			assert.True(t, req.NewBalance.Equal(decimal.NewFromInt(42)))
			return wallet, nil
		})

	w := api.do(http.MethodPut, "/api/v1/wallets/"+wallet.ID.String()+"/balance", map[string]string{"balance": "42"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "42", decodeData(t, w)["balance"])
}

// --- Transactions ---

func TestTransaction_Create(t *testing.T) {
	api := newTestAPI(t)
	walletID := uuid.New()
	txn := &domain.Transaction{
		ID:         uuid.New(),
		Sequence:   1,
		Amount:     decimal.RequireFromString("12.5"),
		Date:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		WalletID:   walletID,
		CategoryID: "food",
		Type:       domain.TransactionTypeExpense,
		Kind:       domain.TransactionKindManual,
	}

	api.finance.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
			assert.Equal(t, walletID, req.WalletID)
			assert.Equal(t, domain.TransactionTypeExpense, req.Type)
			assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), req.Date)
			assert.Equal(t, "ui-cmd-1", req.RequestKey)
			return txn, nil
		})

	w := api.do(http.MethodPost, "/api/v1/transactions", map[string]string{
		"amount":      "12.5",
		"date":        "2024-03-01",
		"wallet_id":   walletID.String(),
		"category_id": "food",
		"type":        "EXPENSE",
	}, HeaderIdempotencyKey, "ui-cmd-1")

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "-12.5", data["signed_amount"])
	assert.Equal(t, "2024-03-01", data["date"])
}

func TestTransaction_Create_DefaultsDateToToday(t *testing.T) {
	api := newTestAPI(t)

	api.finance.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreateTransactionRequest) (*domain.Transaction, error) {
			assert.Equal(t, time.Now().UTC().Truncate(24*time.Hour), req.Date)
			return &domain.Transaction{ID: uuid.New(), Date: req.Date}, nil
		})

	w := api.do(http.MethodPost, "/api/v1/transactions", map[string]string{
		"amount":      "1",
		"wallet_id":   uuid.NewString(),
		"category_id": "salary",
		"type":        "INCOME",
	})

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestTransaction_Create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"duplicate command", apperror.ErrDuplicateCommand(), http.StatusConflict, apperror.CodeDuplicateCommand},
		{"bad rate", apperror.ErrInvalidExchangeRate(), http.StatusBadRequest, apperror.CodeExchangeRate},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, apperror.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			api.finance.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			w := api.do(http.MethodPost, "/api/v1/transactions", map[string]string{
				"amount":      "5",
				"wallet_id":   uuid.NewString(),
				"category_id": "food",
				"type":        "EXPENSE",
			})

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, errorCode(t, w))
		})
	}
}

func TestTransaction_List_Filters(t *testing.T) {
	api := newTestAPI(t)
	walletID := uuid.New()

	api.finance.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f ports.TransactionFilter) ([]domain.Transaction, error) {
			require.NotNil(t, f.WalletID)
			assert.Equal(t, walletID, *f.WalletID)
			require.NotNil(t, f.Kind)
			assert.Equal(t, domain.TransactionKindTransferLeg, *f.Kind)
			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *f.To)
			assert.Nil(t, f.LoanID)
			return []domain.Transaction{}, nil
		})

	w := api.do(http.MethodGet, "/api/v1/transactions?wallet_id="+walletID.String()+"&kind=TRANSFER_LEG&from=2024-01-01&to=2024-02-01", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decodeList(t, w))
}

func TestTransaction_List_BadFilter(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/transactions?from=yesterday", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransaction_Revert(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()
	api.finance.EXPECT().RevertTransaction(gomock.Any(), id).Return(nil)

	w := api.do(http.MethodDelete, "/api/v1/transactions/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

// --- Transfers ---

func TestTransfer_Create(t *testing.T) {
	api := newTestAPI(t)
	from, to, transferID := uuid.New(), uuid.New(), uuid.New()

	api.finance.EXPECT().CreateTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreateTransferRequest) (*ports.TransferResult, error) {
			assert.Equal(t, from, req.FromWalletID)
			assert.Equal(t, to, req.ToWalletID)
			return &ports.TransferResult{
				TransferID: transferID,
				Outgoing:   domain.Transaction{ID: uuid.New(), WalletID: from, Amount: req.Amount, Type: domain.TransactionTypeExpense, TransferID: &transferID},
				Incoming:   domain.Transaction{ID: uuid.New(), WalletID: to, Amount: req.Amount, Type: domain.TransactionTypeIncome, TransferID: &transferID},
			}, nil
		})

	w := api.do(http.MethodPost, "/api/v1/transfers", map[string]string{
		"amount":         "30",
		"from_wallet_id": from.String(),
		"to_wallet_id":   to.String(),
		"date":           "2024-01-10",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, transferID.String(), data["transfer_id"])
	outgoing := data["outgoing"].(map[string]interface{})
	assert.Equal(t, "-30", outgoing["signed_amount"])
	assert.Equal(t, transferID.String(), outgoing["transfer_id"])
}

func TestTransfer_Cancel_NotFound(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()
	api.finance.EXPECT().CancelTransfer(gomock.Any(), id).Return(apperror.ErrNotFound("transfer"))

	w := api.do(http.MethodDelete, "/api/v1/transfers/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Loans ---

func sampleLoan(total, paid string) *domain.Loan {
	loan := &domain.Loan{
		ID:          uuid.New(),
		Person:      "Alice",
		TotalAmount: decimal.RequireFromString(total),
		PaidAmount:  decimal.RequireFromString(paid),
		WalletID:    uuid.New(),
		Date:        time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}
	loan.SettleStatus()
	return loan
}

func TestLoan_Create(t *testing.T) {
	api := newTestAPI(t)
	loan := sampleLoan("100", "0")

	api.finance.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.CreateLoanRequest) (*domain.Loan, error) {
			assert.Equal(t, "Alice", req.Person)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)))
			return loan, nil
		})

	w := api.do(http.MethodPost, "/api/v1/loans", map[string]string{
		"person": "Alice", "amount": "100", "wallet_id": loan.WalletID.String(), "date": "2024-01-05",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "100", data["remaining"])
	assert.Equal(t, string(domain.LoanStatusOutstanding), data["status"])
}

func TestLoan_RecordPayment(t *testing.T) {
	api := newTestAPI(t)
	loan := sampleLoan("100", "100")

	api.finance.EXPECT().RecordLoanPayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.RecordLoanPaymentRequest) (*domain.Loan, error) {
			assert.Equal(t, loan.ID, req.LoanID)
			assert.True(t, req.Date.IsZero(), "missing date is left to the service")
			return loan, nil
		})

	w := api.do(http.MethodPost, "/api/v1/loans/"+loan.ID.String()+"/payments", map[string]string{"amount": "60"})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "0", data["remaining"])
	assert.Equal(t, string(domain.LoanStatusPaid), data["status"])
}

func TestLoan_RecordPayment_Overpay(t *testing.T) {
	api := newTestAPI(t)
	id := uuid.New()
	api.finance.EXPECT().RecordLoanPayment(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInvalidAmount("payment exceeds remaining amount"))

	w := api.do(http.MethodPost, "/api/v1/loans/"+id.String()+"/payments", map[string]string{"amount": "500"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, apperror.CodeInvalidAmount, errorCode(t, w))
}

func TestLoan_ListAndGet(t *testing.T) {
	api := newTestAPI(t)
	loan := sampleLoan("50", "10")
	api.finance.EXPECT().ListLoans(gomock.Any()).Return([]domain.Loan{*loan}, nil)
	api.finance.EXPECT().GetLoan(gomock.Any(), loan.ID).Return(loan, nil)

	w := api.do(http.MethodGet, "/api/v1/loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = api.do(http.MethodGet, "/api/v1/loans/"+loan.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "40", decodeData(t, w)["remaining"])
}

// --- Income ---

func TestIncome_Distribute(t *testing.T) {
	api := newTestAPI(t)
	walletID := uuid.New()

	api.finance.EXPECT().DistributeIncome(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.DistributeIncomeRequest) (*domain.Transaction, error) {
			assert.Empty(t, req.CategoryID)
			assert.Equal(t, "JPY", req.Currency)
			return &domain.Transaction{
				ID: uuid.New(), WalletID: walletID, Amount: decimal.NewFromInt(20),
				Type: domain.TransactionTypeIncome, Kind: domain.TransactionKindDistribution, CategoryID: "salary",
			}, nil
		})

	w := api.do(http.MethodPost, "/api/v1/income", map[string]string{
		"amount": "3000", "currency": "JPY", "wallet_id": walletID.String(),
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "DISTRIBUTION", decodeData(t, w)["kind"])
}

// --- Settings ---

func TestExchangeRate_Get(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/exchange-rate", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "USD", data["canonical_currency"])
	assert.Equal(t, "JPY", data["display_currency"])
	assert.Equal(t, "150", data["rate"])
}

func TestExchangeRate_Set(t *testing.T) {
	api := newTestAPI(t)
	api.finance.EXPECT().SetExchangeRate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rate decimal.Decimal) error {
			assert.True(t, decimal.RequireFromString("151.25").Equal(rate))
			return nil
		})

	w := api.do(http.MethodPut, "/api/v1/exchange-rate", map[string]string{"rate": "151.25"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "JPY", decodeData(t, w)["display_currency"])
}

func TestExchangeRate_Set_Rejected(t *testing.T) {
	for _, rate := range []string{"NaN", "Inf", "abc", "0", "-1"} {
		t.Run(rate, func(t *testing.T) {
			api := newTestAPI(t)

			w := api.do(http.MethodPut, "/api/v1/exchange-rate", map[string]string{"rate": rate})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, apperror.CodeExchangeRate, errorCode(t, w))
		})
	}
}

func TestExchangeRate_Set_MissingRate(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPut, "/api/v1/exchange-rate", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperror.CodeValidation, errorCode(t, w))
}

func TestCategories_List(t *testing.T) {
	api := newTestAPI(t)
	api.finance.EXPECT().Categories().Return([]domain.Category{
		{ID: "salary", Name: "Salary", Kind: domain.CategoryKindIncome},
		{ID: domain.CategoryTransfer, Name: "Transfer", Kind: domain.CategoryKindExpense, System: true},
	})

	w := api.do(http.MethodGet, "/api/v1/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	items := decodeList(t, w)
	require.Len(t, items, 2)
	assert.Equal(t, true, items[1].(map[string]interface{})["system"])
}

// --- Reports ---

func TestReport_Summary(t *testing.T) {
	api := newTestAPI(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	api.reporting.EXPECT().Summary(gomock.Any(), from, to).Return(&ports.Summary{
		From:         from,
		To:           to,
		TotalIncome:  decimal.NewFromInt(1000),
		TotalExpense: decimal.NewFromInt(250),
		Net:          decimal.NewFromInt(750),
		ByCategory: []ports.CategoryTotal{
			{CategoryID: "salary", Name: "Salary", Kind: domain.CategoryKindIncome, Total: decimal.NewFromInt(1000), Count: 1},
		},
	}, nil)

	w := api.do(http.MethodGet, "/api/v1/reports/summary?from=2024-01-01&to=2024-02-01", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "750", data["net"])
	assert.Equal(t, "$750.00", data["net_formatted"])
	assert.Len(t, data["by_category"], 1)
}

func TestReport_Summary_MissingRange(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/reports/summary?from=2024-01-01", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport_Monthly(t *testing.T) {
	api := newTestAPI(t)
	api.reporting.EXPECT().MonthlySummary(gomock.Any(), 2024, time.March).Return(&ports.Summary{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	w := api.do(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=3", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2024-03-01", decodeData(t, w)["from"])
}

func TestReport_Monthly_BadMonth(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/reports/monthly?year=2024&month=13", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport_Reconcile(t *testing.T) {
	api := newTestAPI(t)
	api.reporting.EXPECT().Reconcile(gomock.Any()).Return([]ports.WalletReconciliation{
		{WalletID: uuid.New(), Name: "Cash", Balance: decimal.NewFromInt(120), ExpectedBalance: decimal.NewFromInt(100), Drift: decimal.NewFromInt(20)},
	}, nil)

	w := api.do(http.MethodGet, "/api/v1/reports/reconcile", nil)

	require.Equal(t, http.StatusOK, w.Code)
	items := decodeList(t, w)
	require.Len(t, items, 1)
	assert.Equal(t, "20", items[0].(map[string]interface{})["drift"])
}

// --- Health ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error {
	return s.err
}

func (s stubChecker) Name() string {
	return s.name
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t, stubChecker{name: "postgresql"}, stubChecker{name: "ledger-sync"})

	w := api.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	api := newTestAPI(t, stubChecker{name: "ledger-sync", err: errors.New("ledger state not persisted")})

	w := api.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "unhealthy", deps["ledger-sync"].(map[string]interface{})["status"])
}

func TestSwagger_NotLoaded(t *testing.T) {
	SetSwaggerSpec(nil)
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/swagger/spec", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	SetSwaggerSpec([]byte("openapi: 3.0.3"))
	defer SetSwaggerSpec(nil)

	w = api.do(http.MethodGet, "/swagger/spec", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")
}
