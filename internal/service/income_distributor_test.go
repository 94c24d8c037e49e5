package service

import (
	"testing"
	"time"

	"finance-ledger/internal/core/domain"
	"finance-ledger/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomeDistributor_Distribute(t *testing.T) {
	ledger, wallets := newTestLedger(t)
	bank := mustWallet(t, wallets, "Bank", "0")
	d := NewIncomeDistributor(ledger, "", zerolog.Nop())

	txn, err := d.Distribute(dec("1500"), bank.ID, day(2024, time.September, 1), "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultIncomeCategory, txn.CategoryID)
	assert.Equal(t, domain.TransactionTypeIncome, txn.Type)
	assert.Equal(t, domain.TransactionKindDistribution, txn.Kind)
	assert.Equal(t, "1500", balanceOf(t, wallets, bank.ID))

	txn, err = d.Distribute(dec("200"), bank.ID, day(2024, time.September, 2), "Side gig", "freelance")
	require.NoError(t, err)
	assert.Equal(t, "freelance", txn.CategoryID)
	assert.Equal(t, "Side gig", txn.Description)
	assert.Equal(t, "1700", balanceOf(t, wallets, bank.ID))
}

func TestIncomeDistributor_Distribute_Errors(t *testing.T) {
	ledger, wallets := newTestLedger(t)
	bank := mustWallet(t, wallets, "Bank", "0")
	d := NewIncomeDistributor(ledger, "gift", zerolog.Nop())

	_, err := d.Distribute(dec("0"), bank.ID, day(2024, time.September, 1), "", "")
	assertAppError(t, err, apperror.CodeValidation)

	_, err = d.Distribute(dec("10"), bank.ID, day(2024, time.September, 1), "", "food")
	assertAppError(t, err, apperror.CodeValidation)

	assert.Equal(t, "0", balanceOf(t, wallets, bank.ID))
}
