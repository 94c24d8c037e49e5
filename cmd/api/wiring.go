package main

import (
	"context"
	"fmt"

	"finance-ledger/config"
	memStorage "finance-ledger/internal/adapter/storage/memory"
	pgStorage "finance-ledger/internal/adapter/storage/postgres"
	redisStorage "finance-ledger/internal/adapter/storage/redis"
	"finance-ledger/internal/core/ports"
	"finance-ledger/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// storage is the persistence side of the ledger for one backend.
type storage struct {
	store    ports.SnapshotStore
	guard    ports.CommandGuard
	checkers []ports.HealthChecker
	closers  []func()
}

// Close releases backend connections in reverse order.
func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	st := &storage{}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		st.store = memStorage.NewSnapshotStore()
		st.guard = memStorage.NewCommandGuard(cfg.Ledger.CommandTTL)
		log.Warn().Msg("memory backend: ledger state is lost on exit")

	case config.BackendPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		st.closers = append(st.closers, pool.Close)
		if err := pgStorage.Migrate(ctx, pool, log); err != nil {
			st.Close()
			return nil, err
		}
		st.store = pgStorage.NewSnapshotStoreFromPool(pool, log)
		st.guard = memStorage.NewCommandGuard(cfg.Ledger.CommandTTL)
		st.checkers = append(st.checkers, pgStorage.NewHealthCheck(pool))

	case config.BackendRedis:
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		st.closers = append(st.closers, func() { _ = rdb.Close() })
		st.store = redisStorage.NewSnapshotStore(rdb, log)
		st.guard = redisStorage.NewCommandGuard(rdb)
		st.checkers = append(st.checkers, redisStorage.NewHealthCheck(rdb))

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return st, nil
}

func newFinanceService(cfg config.LedgerConfig, st *storage, log zerolog.Logger) (*service.FinanceServiceImpl, []service.WalletSeed, error) {
	rate, err := service.ParseRate(cfg.ExchangeRate)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger.exchange_rate: %w", err)
	}

	seeds := make([]service.WalletSeed, 0, len(cfg.SeedWallets))
	for i, w := range cfg.SeedWallets {
		balance := decimal.Zero
		if w.Balance != "" {
			if balance, err = decimal.NewFromString(w.Balance); err != nil {
				return nil, nil, fmt.Errorf("ledger.seed_wallets[%d].balance: %w", i, err)
			}
		}
		seeds = append(seeds, service.WalletSeed{Name: w.Name, Balance: balance})
	}

	svc, err := service.NewFinanceService(service.FinanceConfig{
		CanonicalCurrency:     cfg.CanonicalCurrency,
		DisplayCurrency:       cfg.DisplayCurrency,
		ExchangeRate:          rate,
		DefaultIncomeCategory: cfg.DefaultIncomeCategory,
		CommandTTL:            cfg.CommandTTL,
	}, st.store, st.guard, log)
	if err != nil {
		return nil, nil, err
	}
	return svc, seeds, nil
}
