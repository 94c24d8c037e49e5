package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := CreateLoanRequest{
		Person:      "  alice  ",
		Description: " rent share ",
		Amount:      " 40 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice", req.Person)
	assert.Equal(t, "rent share", req.Description)
	assert.Equal(t, "40", req.Amount)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := CreateTransactionRequest{
		Description: "lunch <script>alert('x')</script>",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.Description, "&lt;script&gt;")
	assert.NotContains(t, req.Description, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	note := "  paid back early  "
	req := struct {
		Note  *string
		Empty *string
	}{Note: &note}
	SanitizeStruct(&req)

	assert.Equal(t, "paid back early", *req.Note)
	assert.Nil(t, req.Empty)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestValidators_Transaction(t *testing.T) {
	valid := CreateTransactionRequest{
		Amount:     "12.50",
		Date:       "2024-03-01",
		WalletID:   "7f8f1a8c-7d3c-4a33-9b8a-0f5d3c6f0a11",
		CategoryID: "food",
		Type:       "EXPENSE",
		Currency:   "USD",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	tests := []struct {
		name   string
		mutate func(r *CreateTransactionRequest)
	}{
		{"amount not decimal", func(r *CreateTransactionRequest) { r.Amount = "12,50" }},
		{"date wrong layout", func(r *CreateTransactionRequest) { r.Date = "01/03/2024" }},
		{"wallet not uuid", func(r *CreateTransactionRequest) { r.WalletID = "cash" }},
		{"category with spaces", func(r *CreateTransactionRequest) { r.CategoryID = "eating out" }},
		{"category uppercase", func(r *CreateTransactionRequest) { r.CategoryID = "Groceries" }},
		{"unknown type", func(r *CreateTransactionRequest) { r.Type = "REFUND" }},
		{"currency too long", func(r *CreateTransactionRequest) { r.Currency = "USDT" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, binding.Validator.ValidateStruct(&req))
		})
	}
}

func TestValidators_OptionalFields(t *testing.T) {
	req := CreateWalletRequest{Name: "Savings"}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))

	req.InitialBalance = "abc"
	assert.Error(t, binding.Validator.ValidateStruct(&req))
}
