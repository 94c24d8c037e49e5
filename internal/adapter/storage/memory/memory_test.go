package memory

import (
	"context"
	"testing"
	"time"

	"finance-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore(t *testing.T) {
	store := NewSnapshotStore()
	ctx := context.Background()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing saved yet")

	snap := &domain.LedgerSnapshot{
		Wallets:      []domain.Wallet{{ID: uuid.New(), Name: "Cash", Balance: decimal.NewFromInt(100)}},
		ExchangeRate: decimal.NewFromInt(360),
	}
	require.NoError(t, store.Save(ctx, snap))

	snap.Wallets[0].Name = "mutated after save"

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Wallets, 1)
	assert.Equal(t, "Cash", got.Wallets[0].Name)

	got.Wallets[0].Name = "mutated after load"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cash", again.Wallets[0].Name)
}

func TestCommandGuard(t *testing.T) {
	guard := NewCommandGuard(time.Minute)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "k"))
	ok, err = guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommandGuard_Expiry(t *testing.T) {
	guard := NewCommandGuard(time.Minute)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "k", 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		ok, err := guard.Claim(ctx, "k", 20*time.Millisecond)
		return err == nil && ok
	}, time.Second, 10*time.Millisecond)
}
