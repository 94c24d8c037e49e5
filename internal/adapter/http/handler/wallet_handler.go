package handler

import (
	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	svc ports.FinanceService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc ports.FinanceService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	initial, err := dto.ParseAmount("initial_balance", req.InitialBalance)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.svc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		Name:           req.Name,
		InitialBalance: initial,
		Currency:       req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, presenter(h.svc).Wallet(wallet))
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	wallets, err := h.svc.ListWallets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.svc).Wallets(wallets))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.svc.GetWallet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.svc).Wallet(wallet))
}

// SetBalance handles PUT /api/v1/wallets/:id/balance.
func (h *WalletHandler) SetBalance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SetWalletBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := dto.ParseAmount("balance", req.Balance)
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.svc.SetWalletBalance(c.Request.Context(), ports.SetWalletBalanceRequest{
		WalletID:   id,
		NewBalance: balance,
		Currency:   req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.svc).Wallet(wallet))
}
