package handler

import (
	"finance-ledger/internal/adapter/http/middleware"
	"finance-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	FinanceSvc     ports.FinanceService
	ReportingSvc   ports.ReportingService
	HealthCheckers []ports.HealthChecker
	RateLimit      middleware.RateLimitRule
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimiter(deps.RateLimit))

	walletHandler := NewWalletHandler(deps.FinanceSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", walletHandler.Create)
		wallets.GET("", walletHandler.List)
		wallets.GET("/:id", walletHandler.Get)
		wallets.PUT("/:id/balance", walletHandler.SetBalance)
	}

	txHandler := NewTransactionHandler(deps.FinanceSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.POST("", txHandler.Create)
		transactions.GET("", txHandler.List)
		transactions.DELETE("/:id", txHandler.Revert)
	}

	transferHandler := NewTransferHandler(deps.FinanceSvc)
	transfers := v1.Group("/transfers")
	{
		transfers.POST("", transferHandler.Create)
		transfers.DELETE("/:id", transferHandler.Cancel)
	}

	loanHandler := NewLoanHandler(deps.FinanceSvc)
	loans := v1.Group("/loans")
	{
		loans.POST("", loanHandler.Create)
		loans.GET("", loanHandler.List)
		loans.GET("/:id", loanHandler.Get)
		loans.POST("/:id/payments", loanHandler.RecordPayment)
	}

	incomeHandler := NewIncomeHandler(deps.FinanceSvc)
	v1.POST("/income", incomeHandler.Distribute)

	settingsHandler := NewSettingsHandler(deps.FinanceSvc)
	v1.GET("/exchange-rate", settingsHandler.GetExchangeRate)
	v1.PUT("/exchange-rate", settingsHandler.SetExchangeRate)
	v1.GET("/categories", settingsHandler.ListCategories)

	reportHandler := NewReportHandler(deps.ReportingSvc, deps.FinanceSvc)
	reports := v1.Group("/reports")
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/monthly", reportHandler.Monthly)
		reports.GET("/reconcile", reportHandler.Reconcile)
	}

	return r
}
