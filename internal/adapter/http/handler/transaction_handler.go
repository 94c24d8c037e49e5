package handler

import (
	"time"

	"finance-ledger/internal/adapter/http/dto"
	"finance-ledger/internal/core/domain"
	"finance-ledger/internal/core/ports"
	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles manual transactions and the transaction log.
type TransactionHandler struct {
	svc ports.FinanceService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(svc ports.FinanceService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// Create handles POST /api/v1/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
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

	txn, err := h.svc.CreateTransaction(c.Request.Context(), ports.CreateTransactionRequest{
		Description: req.Description,
		Amount:      amount,
		Currency:    req.Currency,
		Date:        date,
		WalletID:    walletID,
		CategoryID:  req.CategoryID,
		Type:        domain.TransactionType(req.Type),
		RequestKey:  requestKey(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewTransactionResponse(txn))
}

// List handles GET /api/v1/transactions.
// Query: wallet_id, kind, transfer_id, loan_id, from, to (to is exclusive).
func (h *TransactionHandler) List(c *gin.Context) {
	filter, err := parseTransactionFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	txns, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionList(txns))
}

// Revert handles DELETE /api/v1/transactions/:id.
func (h *TransactionHandler) Revert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.svc.RevertTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseTransactionFilter(c *gin.Context) (ports.TransactionFilter, error) {
	var filter ports.TransactionFilter

	if s := c.Query("wallet_id"); s != "" {
		id, err := dto.ParseID("wallet_id", s)
		if err != nil {
			return filter, err
		}
		filter.WalletID = &id
	}
	if s := c.Query("transfer_id"); s != "" {
		id, err := dto.ParseID("transfer_id", s)
		if err != nil {
			return filter, err
		}
		filter.TransferID = &id
	}
	if s := c.Query("loan_id"); s != "" {
		id, err := dto.ParseID("loan_id", s)
		if err != nil {
			return filter, err
		}
		filter.LoanID = &id
	}
	if s := c.Query("kind"); s != "" {
		kind := domain.TransactionKind(s)
		filter.Kind = &kind
	}
	if s := c.Query("from"); s != "" {
		from, err := dto.ParseDate("from", s, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := dto.ParseDate("to", s, time.Time{})
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}
