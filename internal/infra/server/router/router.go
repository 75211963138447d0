// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dompetku/backend/internal/integration/entrypoint/controller"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	categoryController    *controller.CategoryController
	walletController      *controller.WalletController
	transactionController *controller.TransactionController
	transferController    *controller.TransferController
	budgetController      *controller.BudgetController
	sharingController     *controller.SharingController
	reportController      *controller.ReportController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	walletController *controller.WalletController,
	transactionController *controller.TransactionController,
	transferController *controller.TransferController,
	budgetController *controller.BudgetController,
	sharingController *controller.SharingController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		categoryController:    categoryController,
		walletController:      walletController,
		transactionController: transactionController,
		transferController:    transferController,
		budgetController:      budgetController,
		sharingController:     sharingController,
		reportController:      reportController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				if r.loginRateLimiter != nil {
					auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				} else {
					auth.POST("/login", r.authController.Login)
				}
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				if r.authMiddleware != nil {
					auth.DELETE("/account", r.authMiddleware.Authenticate(), r.authController.DeleteAccount)
				}
			}
		}

		if r.authMiddleware == nil {
			return
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.walletController != nil {
			wallets := v1.Group("/wallets")
			wallets.Use(r.authMiddleware.Authenticate())
			{
				wallets.GET("", r.walletController.List)
				wallets.POST("", r.walletController.Create)
				wallets.PATCH("/:id", r.walletController.Update)
				wallets.DELETE("/:id", r.walletController.Delete)

				if r.sharingController != nil {
					wallets.POST("/:id/shares", r.sharingController.Share)
					wallets.GET("/:id/shares", r.sharingController.ListShares)
				}
			}
		}

		if r.sharingController != nil {
			shares := v1.Group("/shares")
			shares.Use(r.authMiddleware.Authenticate())
			{
				shares.DELETE("/:id", r.sharingController.Revoke)
			}
			v1.GET("/shared-wallets", r.authMiddleware.Authenticate(), r.sharingController.SharedWithMe)
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.transferController != nil {
			v1.POST("/transfers", r.authMiddleware.Authenticate(), r.transferController.Transfer)
		}

		if r.budgetController != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.PUT("", r.budgetController.Upsert)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}

		if r.reportController != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/summary", r.reportController.Summary)
				reports.GET("/export", r.reportController.Export)
				reports.POST("/import", r.reportController.Import)
			}
		}
	}
}
