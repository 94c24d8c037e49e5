package main

import (
	"fmt"

	"finance-ledger/config"
	pgStorage "finance-ledger/internal/adapter/storage/postgres"
	"finance-ledger/pkg/logger"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

			pool, err := pgStorage.NewPool(cmd.Context(), cfg.Database, log)
			if err != nil {
				return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			}
			defer pool.Close()

			return pgStorage.Migrate(cmd.Context(), pool, log)
		},
	}
}
