package handler

import (
	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// IncomeHandler handles income distribution into wallets.
type IncomeHandler struct {
	svc ports.FinanceService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(svc ports.FinanceService) *IncomeHandler {
	return &IncomeHandler{svc: svc}
}

// Distribute handles POST /api/v1/income.
func (h *IncomeHandler) Distribute(c *gin.Context) {
	var req dto.DistributeIncomeRequest
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

	txn, err := h.svc.DistributeIncome(c.Request.Context(), ports.DistributeIncomeRequest{
		Amount:      amount,
		Currency:    req.Currency,
		WalletID:    walletID,
		Date:        date,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		RequestKey:  requestKey(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewTransactionResponse(txn))
}
