// Package report contains reporting, export and import use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
)

// SummaryInput represents the input for the dashboard summary.
type SummaryInput struct {
	ActorID uuid.UUID
	Month   int
	Year    int
}

// SummaryOutput aggregates the dashboard figures: total balance across owned
// wallets, the period's income and expense totals, and per-category expense
// breakdown.
type SummaryOutput struct {
	TotalBalance      decimal.Decimal
	PeriodIncome      decimal.Decimal
	PeriodExpense     decimal.Decimal
	ExpenseByCategory []adapter.CategoryTotal
}

// SummaryUseCase computes the dashboard summary for one calendar month.
type SummaryUseCase struct {
	walletRepo      adapter.WalletRepository
	transactionRepo adapter.TransactionRepository
}

// NewSummaryUseCase creates a new SummaryUseCase instance.
func NewSummaryUseCase(walletRepo adapter.WalletRepository, transactionRepo adapter.TransactionRepository) *SummaryUseCase {
	return &SummaryUseCase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute computes the summary. The period defaults to the current month.
func (uc *SummaryUseCase) Execute(ctx context.Context, input SummaryInput) (*SummaryOutput, error) {
	month, year := input.Month, input.Year
	if month == 0 && year == 0 {
		now := time.Now().UTC()
		month, year = int(now.Month()), now.Year()
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	totalBalance, err := uc.walletRepo.TotalBalance(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum wallet balances: %w", err)
	}

	expenseTotals, err := uc.transactionRepo.CategoryTotals(ctx, input.ActorID, entity.TransactionTypeExpense, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}

	incomeTotals, err := uc.transactionRepo.CategoryTotals(ctx, input.ActorID, entity.TransactionTypeIncome, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate income: %w", err)
	}

	periodExpense := decimal.Zero
	for _, t := range expenseTotals {
		periodExpense = periodExpense.Add(t.Total)
	}
	periodIncome := decimal.Zero
	for _, t := range incomeTotals {
		periodIncome = periodIncome.Add(t.Total)
	}

	return &SummaryOutput{
		TotalBalance:      totalBalance,
		PeriodIncome:      periodIncome,
		PeriodExpense:     periodExpense,
		ExpenseByCategory: expenseTotals,
	}, nil
}
