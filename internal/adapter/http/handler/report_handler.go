package handler

import (
	"strconv"
	"time"

	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles dashboard reports.
type ReportHandler struct {
	reportingSvc ports.ReportingService
	financeSvc   ports.FinanceService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportingSvc ports.ReportingService, financeSvc ports.FinanceService) *ReportHandler {
	return &ReportHandler{reportingSvc: reportingSvc, financeSvc: financeSvc}
}

// Summary handles GET /api/v1/reports/summary?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *ReportHandler) Summary(c *gin.Context) {
	if c.Query("from") == "" || c.Query("to") == "" {
		response.Error(c, apperror.Validation("from and to are required"))
		return
	}
	from, err := dto.ParseDate("from", c.Query("from"), time.Time{})
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := dto.ParseDate("to", c.Query("to"), time.Time{})
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportingSvc.Summary(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.financeSvc).Summary(summary))
}

// Monthly handles GET /api/v1/reports/monthly?year=2024&month=3.
// Missing parameters default to the current month.
func (h *ReportHandler) Monthly(c *gin.Context) {
	now := time.Now().UTC()

	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 1 {
		response.Error(c, apperror.Validation("year must be a positive integer"))
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, apperror.Validation("month must be between 1 and 12"))
		return
	}

	summary, err := h.reportingSvc.MonthlySummary(c.Request.Context(), year, time.Month(month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, presenter(h.financeSvc).Summary(summary))
}

// Reconcile handles GET /api/v1/reports/reconcile.
func (h *ReportHandler) Reconcile(c *gin.Context) {
	rows, err := h.reportingSvc.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewReconciliationList(rows))
}
