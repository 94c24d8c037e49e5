package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"finance-ledger/config"
	"finance-ledger/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestRedisAddr(t *testing.T) {
	cfg := config.RedisConfig{Host: "redis.example.com", Port: 6380}
	assert.Equal(t, "redis.example.com:6380", cfg.Addr())
}

func TestNewClient(t *testing.T) {
	s := miniredis.RunT(t)
	port, err := strconv.Atoi(s.Port())
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{Host: s.Host(), Port: port}, zerolog.Nop())
	require.NoError(t, err)
	defer client.Close()

	h := NewHealthCheck(client)
	assert.Equal(t, "redis", h.Name())
	assert.NoError(t, h.Ping(context.Background()))

	s.Close()
	assert.Error(t, h.Ping(context.Background()))
}

// ==================== CommandGuard ====================

func TestCommandGuard_Claim(t *testing.T) {
	_, client := newTestClient(t)
	guard := NewCommandGuard(client)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "create-transaction:click-1", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "first claim wins")

	ok, err = guard.Claim(ctx, "create-transaction:click-1", 5*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "replay is rejected")

	ok, err = guard.Claim(ctx, "create-transfer:click-1", 5*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "same key for another command is independent")
}

func TestCommandGuard_Expiry(t *testing.T) {
	s, client := newTestClient(t)
	guard := NewCommandGuard(client)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Minute)

	ok, err = guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired key can be claimed again")
}

func TestCommandGuard_Release(t *testing.T) {
	s, client := newTestClient(t)
	guard := NewCommandGuard(client)
	ctx := context.Background()

	_, err := guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, s.Exists("ledger:cmd:k"))

	require.NoError(t, guard.Release(ctx, "k"))
	assert.False(t, s.Exists("ledger:cmd:k"))

	ok, err := guard.Claim(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommandGuard_ConnectionError(t *testing.T) {
	s, client := newTestClient(t)
	guard := NewCommandGuard(client)
	s.Close()

	_, err := guard.Claim(context.Background(), "k", time.Minute)
	assert.Error(t, err)
}

// ==================== SnapshotStore ====================

func TestSnapshotStore_SaveLoad(t *testing.T) {
	s, client := newTestClient(t)
	store := NewSnapshotStore(client, zerolog.Nop())
	ctx := context.Background()

	transferID := uuid.New()
	walletID := uuid.New()
	snap := &domain.LedgerSnapshot{
		Wallets: []domain.Wallet{{ID: walletID, Name: "Cash", Balance: decimal.RequireFromString("70.5"), InitialBalance: decimal.RequireFromString("100")}},
		Transactions: []domain.Transaction{{
			ID: uuid.New(), Sequence: 1, Amount: decimal.RequireFromString("29.5"), WalletID: walletID,
			CategoryID: domain.CategoryTransfer, Type: domain.TransactionTypeExpense,
			Kind: domain.TransactionKindTransferLeg, TransferID: &transferID,
			Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		}},
		ExchangeRate: decimal.RequireFromString("360"),
		SavedAt:      time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(ctx, snap))
	assert.Equal(t, "1", s.HGet("ledger:snapshot:meta", "transactions"))
	assert.Equal(t, "2024-03-01T12:00:00Z", s.HGet("ledger:snapshot:meta", "saved_at"))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Wallets, 1)
	assert.True(t, snap.Wallets[0].Balance.Equal(got.Wallets[0].Balance))
	require.Len(t, got.Transactions, 1)
	require.NotNil(t, got.Transactions[0].TransferID)
	assert.Equal(t, transferID, *got.Transactions[0].TransferID)
	assert.True(t, snap.ExchangeRate.Equal(got.ExchangeRate))
}

func TestSnapshotStore_Load_Empty(t *testing.T) {
	_, client := newTestClient(t)
	store := NewSnapshotStore(client, zerolog.Nop())

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotStore_Load_Corrupt(t *testing.T) {
	s, client := newTestClient(t)
	store := NewSnapshotStore(client, zerolog.Nop())
	require.NoError(t, s.Set("ledger:snapshot", "{not json"))

	_, err := store.Load(context.Background())
	assert.ErrorContains(t, err, "unmarshal snapshot")
}
