package handler

import (
	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/internal/service"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettingsHandler exposes the exchange rate and the category catalog.
type SettingsHandler struct {
	svc ports.FinanceService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc ports.FinanceService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetExchangeRate handles GET /api/v1/exchange-rate.
func (h *SettingsHandler) GetExchangeRate(c *gin.Context) {
	response.OK(c, presenter(h.svc).ExchangeRate())
}

// SetExchangeRate handles PUT /api/v1/exchange-rate.
func (h *SettingsHandler) SetExchangeRate(c *gin.Context) {
	var req dto.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rate, err := service.ParseRate(req.Rate)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.SetExchangeRate(c.Request.Context(), rate); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.svc).ExchangeRate())
}

// ListCategories handles GET /api/v1/categories.
func (h *SettingsHandler) ListCategories(c *gin.Context) {
	response.OK(c, dto.NewCategoryList(h.svc.Categories()))
}
