// Package main is the entry point for the Dompetku API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/dompetku/backend/config"
	"github.com/dompetku/backend/internal/application/usecase/auth"
	"github.com/dompetku/backend/internal/application/usecase/budget"
	"github.com/dompetku/backend/internal/application/usecase/category"
	"github.com/dompetku/backend/internal/application/usecase/report"
	"github.com/dompetku/backend/internal/application/usecase/sharing"
	"github.com/dompetku/backend/internal/application/usecase/transaction"
	"github.com/dompetku/backend/internal/application/usecase/transfer"
	"github.com/dompetku/backend/internal/application/usecase/wallet"
	"github.com/dompetku/backend/internal/infra/db"
	"github.com/dompetku/backend/internal/infra/server/router"
	"github.com/dompetku/backend/internal/integration/adapters"
	"github.com/dompetku/backend/internal/integration/entrypoint/controller"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
	"github.com/dompetku/backend/internal/integration/persistence"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Dompetku API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.WalletModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.WalletShareModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}()

	// Repositories
	userRepo := persistence.NewUserRepository(database.DB())
	tokenRepo := persistence.NewTokenRepository(database.DB())
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	walletRepo := persistence.NewWalletRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	shareRepo := persistence.NewWalletShareRepository(database.DB())
	ledgerRepo := persistence.NewLedgerRepository(database.DB())

	// Adapters
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	loginLimiter := adapters.NewLoginLimiter(redisClient, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, transactionRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

	// Wallet use cases
	listWalletsUseCase := wallet.NewListWalletsUseCase(walletRepo, shareRepo)
	createWalletUseCase := wallet.NewCreateWalletUseCase(walletRepo, categoryRepo, ledgerRepo)
	updateWalletUseCase := wallet.NewUpdateWalletUseCase(walletRepo)
	deleteWalletUseCase := wallet.NewDeleteWalletUseCase(walletRepo, transactionRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(walletRepo, shareRepo, categoryRepo, ledgerRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(walletRepo, shareRepo, transactionRepo, categoryRepo, ledgerRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, ledgerRepo)

	// Transfer use case
	transferFundsUseCase := transfer.NewTransferFundsUseCase(walletRepo, categoryRepo, ledgerRepo)

	// Budget use cases
	upsertBudgetUseCase := budget.NewUpsertBudgetUseCase(budgetRepo, categoryRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, transactionRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Sharing use cases
	shareWalletUseCase := sharing.NewShareWalletUseCase(walletRepo, userRepo, shareRepo)
	revokeShareUseCase := sharing.NewRevokeShareUseCase(shareRepo, walletRepo)
	listSharesUseCase := sharing.NewListWalletSharesUseCase(walletRepo, shareRepo, userRepo)
	sharedWithMeUseCase := sharing.NewListSharedWithMeUseCase(shareRepo)

	// Report use cases
	summaryUseCase := report.NewSummaryUseCase(walletRepo, transactionRepo)
	exportCSVUseCase := report.NewExportCSVUseCase(transactionRepo)
	importCSVUseCase := report.NewImportCSVUseCase(categoryRepo, walletRepo, ledgerRepo)

	// Controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase, deleteAccountUseCase)
	categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase, updateCategoryUseCase, deleteCategoryUseCase)
	walletController := controller.NewWalletController(listWalletsUseCase, createWalletUseCase, updateWalletUseCase, deleteWalletUseCase)
	transactionController := controller.NewTransactionController(listTransactionsUseCase, createTransactionUseCase, updateTransactionUseCase, deleteTransactionUseCase)
	transferController := controller.NewTransferController(transferFundsUseCase)
	budgetController := controller.NewBudgetController(upsertBudgetUseCase, listBudgetsUseCase, deleteBudgetUseCase)
	sharingController := controller.NewSharingController(shareWalletUseCase, revokeShareUseCase, listSharesUseCase, sharedWithMeUseCase)
	reportController := controller.NewReportController(summaryUseCase, exportCSVUseCase, importCSVUseCase)
	loginRateLimiter := middleware.NewRateLimiter(loginLimiter)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		walletController,
		transactionController,
		transferController,
		budgetController,
		sharingController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
