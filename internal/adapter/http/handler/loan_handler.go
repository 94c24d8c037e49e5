package handler

import (
	"time"

	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// LoanHandler handles money lent to people and its repayments.
type LoanHandler struct {
	svc ports.FinanceService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(svc ports.FinanceService) *LoanHandler {
	return &LoanHandler{svc: svc}
}

// Create handles POST /api/v1/loans.
func (h *LoanHandler) Create(c *gin.Context) {
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := dto.ParseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	date, err := dto.ParseDate("date", req.Date, today())
	if err != nil {
		response.Error(c, err)
		return
	}
	walletID, err := dto.ParseID("wallet_id", req.WalletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.svc.CreateLoan(c.Request.Context(), ports.CreateLoanRequest{
		Person:      req.Person,
		Description: req.Description,
		Amount:      amount,
		Currency:    req.Currency,
		WalletID:    walletID,
		Date:        date,
		RequestKey:  requestKey(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewLoanResponse(loan))
}

// List handles GET /api/v1/loans.
func (h *LoanHandler) List(c *gin.Context) {
	loans, err := h.svc.ListLoans(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewLoanList(loans))
}

// Get handles GET /api/v1/loans/:id.
func (h *LoanHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.svc.GetLoan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewLoanResponse(loan))
}

// RecordPayment handles POST /api/v1/loans/:id/payments.
// A missing date leaves the service to use today.
func (h *LoanHandler) RecordPayment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.LoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount("amount", req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	date, err := dto.ParseDate("date", req.Date, time.Time{})
	if err != nil {
		response.Error(c, err)
		return
	}

	loan, err := h.svc.RecordLoanPayment(c.Request.Context(), ports.RecordLoanPaymentRequest{
		LoanID:     id,
		Amount:     amount,
		Currency:   req.Currency,
		Date:       date,
		RequestKey: requestKey(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewLoanResponse(loan))
}
