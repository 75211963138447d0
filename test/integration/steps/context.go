// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dompetku/backend/internal/application/usecase/auth"
	"github.com/dompetku/backend/internal/application/usecase/budget"
	"github.com/dompetku/backend/internal/application/usecase/category"
	"github.com/dompetku/backend/internal/application/usecase/report"
	"github.com/dompetku/backend/internal/application/usecase/sharing"
	"github.com/dompetku/backend/internal/application/usecase/transaction"
	"github.com/dompetku/backend/internal/application/usecase/transfer"
	"github.com/dompetku/backend/internal/application/usecase/wallet"
	"github.com/dompetku/backend/internal/infra/server/router"
	"github.com/dompetku/backend/internal/integration/adapters"
	"github.com/dompetku/backend/internal/integration/entrypoint/controller"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
	"github.com/dompetku/backend/internal/integration/persistence"
	"github.com/dompetku/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-secret"

// TestContext holds the test state for each scenario.
type TestContext struct {
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	requestHeaders map[string]string

	// Tokens per registered username; accessToken is the active identity.
	accessToken string
	tokens      map[string]string

	// IDs captured while building fixtures, keyed by name.
	walletIDs   map[string]string
	categoryIDs map[string]string
	shareIDs    map[string]string
	lastID      string
}

type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// buildEngine wires the full application against the test database and redis.
func buildEngine(dbConn *gorm.DB, redisClient *redis.Client) *gin.Engine {
	userRepo := persistence.NewUserRepository(dbConn)
	tokenRepo := persistence.NewTokenRepository(dbConn)
	categoryRepo := persistence.NewCategoryRepository(dbConn)
	walletRepo := persistence.NewWalletRepository(dbConn)
	transactionRepo := persistence.NewTransactionRepository(dbConn)
	budgetRepo := persistence.NewBudgetRepository(dbConn)
	shareRepo := persistence.NewWalletShareRepository(dbConn)
	ledgerRepo := persistence.NewLedgerRepository(dbConn)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(testJWTSecret, tokenRepo)

	healthController := controller.NewHealthController(func() bool { return true })
	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		auth.NewRefreshTokenUseCase(tokenService),
		auth.NewLogoutUserUseCase(tokenService),
		auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService),
	)
	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo, transactionRepo),
		category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo),
	)
	walletController := controller.NewWalletController(
		wallet.NewListWalletsUseCase(walletRepo, shareRepo),
		wallet.NewCreateWalletUseCase(walletRepo, categoryRepo, ledgerRepo),
		wallet.NewUpdateWalletUseCase(walletRepo),
		wallet.NewDeleteWalletUseCase(walletRepo, transactionRepo),
	)
	transactionController := controller.NewTransactionController(
		transaction.NewListTransactionsUseCase(transactionRepo),
		transaction.NewCreateTransactionUseCase(walletRepo, shareRepo, categoryRepo, ledgerRepo),
		transaction.NewUpdateTransactionUseCase(walletRepo, shareRepo, transactionRepo, categoryRepo, ledgerRepo),
		transaction.NewDeleteTransactionUseCase(transactionRepo, ledgerRepo),
	)
	transferController := controller.NewTransferController(
		transfer.NewTransferFundsUseCase(walletRepo, categoryRepo, ledgerRepo),
	)
	budgetController := controller.NewBudgetController(
		budget.NewUpsertBudgetUseCase(budgetRepo, categoryRepo),
		budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, transactionRepo),
		budget.NewDeleteBudgetUseCase(budgetRepo),
	)
	sharingController := controller.NewSharingController(
		sharing.NewShareWalletUseCase(walletRepo, userRepo, shareRepo),
		sharing.NewRevokeShareUseCase(shareRepo, walletRepo),
		sharing.NewListWalletSharesUseCase(walletRepo, shareRepo, userRepo),
		sharing.NewListSharedWithMeUseCase(shareRepo),
	)
	reportController := controller.NewReportController(
		report.NewSummaryUseCase(walletRepo, transactionRepo),
		report.NewExportCSVUseCase(transactionRepo),
		report.NewImportCSVUseCase(categoryRepo, walletRepo, ledgerRepo),
	)

	loginLimiter := adapters.NewLoginLimiter(redisClient, 5, time.Minute)
	loginRateLimiter := middleware.NewRateLimiter(loginLimiter)
	authMiddleware := middleware.NewAuthMiddleware(adapters.NewTokenService(testJWTSecret, tokenRepo))

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
	return r.Setup("test")
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		// Rate limiting is skipped in the test environment.
		os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		testDB := mock.NewDb()
		if err := testDB.Reset(); err != nil {
			return ctx, err
		}
		redisClient := mock.NewRedis()
		if err := mock.ClearRedis(redisClient); err != nil {
			return ctx, err
		}

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			tokens:         make(map[string]string),
			walletIDs:      make(map[string]string),
			categoryIDs:    make(map[string]string),
			shareIDs:       make(map[string]string),
		}
		tc.server = httptest.NewServer(buildEngine(testDB.Conn, redisClient))

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerFixtureSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

func registerFixtureSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a registered user "([^"]*)" with password "([^"]*)"$`, aRegisteredUser)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^"([^"]*)" has a wallet "([^"]*)" of type "([^"]*)" with opening balance (\d+)$`, userHasWallet)
	ctx.Step(`^"([^"]*)" has a category "([^"]*)" of type "([^"]*)"$`, userHasCategory)
	ctx.Step(`^"([^"]*)" shares wallet "([^"]*)" with "([^"]*)" with permission "([^"]*)"$`, userSharesWallet)
}

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I upload a CSV to "([^"]*)":$`, iUploadACSVTo)
	ctx.Step(`^I delete the last transaction$`, iDeleteTheLastTransaction)
	ctx.Step(`^I delete the last created resource at "([^"]*)"$`, iDeleteTheLastCreatedResourceAt)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^wallet "([^"]*)" should have balance "([^"]*)"$`, walletShouldHaveBalance)
}
