package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"finance-ledger/config"
	httpHandler "finance-ledger/internal/adapter/http/handler"
	"finance-ledger/internal/adapter/http/middleware"
	"finance-ledger/internal/service"
	"finance-ledger/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const openAPIPath = "docs/api/openapi.yaml"

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("backend", cfg.Storage.Backend).
		Msg("Starting Finance Ledger")

	st, err := openStorage(ctx, cfg, logger.Component(log, "storage"))
	if err != nil {
		return err
	}
	defer st.Close()

	financeSvc, seeds, err := newFinanceService(cfg.Ledger, st, logger.Component(log, "ledger"))
	if err != nil {
		return err
	}
	if err := financeSvc.Load(ctx, seeds); err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	reportingSvc := service.NewReportingService(financeSvc.Ledger())

	if specBytes, err := os.ReadFile(openAPIPath); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		FinanceSvc:     financeSvc,
		ReportingSvc:   reportingSvc,
		HealthCheckers: append(st.checkers, financeSvc.SyncHealth()),
		RateLimit: middleware.RateLimitRule{
			RPS:   cfg.Server.RateLimit.RPS,
			Burst: cfg.Server.RateLimit.Burst,
		},
		Logger: logger.Component(log, "http"),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := financeSvc.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Final ledger flush failed")
	}

	log.Info().Msg("Server exited")
	return nil
}
