package handler

import (
	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles wallet-to-wallet transfers.
type TransferHandler struct {
	svc ports.FinanceService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(svc ports.FinanceService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Create handles POST /api/v1/transfers.
func (h *TransferHandler) Create(c *gin.Context) {
	var req dto.CreateTransferRequest
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
	from, err := dto.ParseID("from_wallet_id", req.FromWalletID)
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := dto.ParseID("to_wallet_id", req.ToWalletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.svc.CreateTransfer(c.Request.Context(), ports.CreateTransferRequest{
		Amount:       amount,
		Currency:     req.Currency,
		FromWalletID: from,
		ToWalletID:   to,
		Date:         date,
		Description:  req.Description,
		RequestKey:   requestKey(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewTransferResponse(result))
}

// Cancel handles DELETE /api/v1/transfers/:id. Both legs are reverted.
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.CancelTransfer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
