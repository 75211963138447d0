// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// ListBudgetsInput represents the input for listing budgets in a period.
type ListBudgetsInput struct {
	ActorID uuid.UUID
	Month   int
	Year    int
}

// ListBudgetsOutput represents the budgets of a period with their realization.
type ListBudgetsOutput struct {
	Budgets []*entity.BudgetWithRealization
}

// ListBudgetsUseCase lists a user's budgets for one (month, year) together
// with the expense total actually recorded against each category in that
// period.
type ListBudgetsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute lists budgets with realization. The period defaults to the current
// month when unset.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	month, year := input.Month, input.Year
	if month == 0 && year == 0 {
		now := time.Now().UTC()
		month, year = int(now.Month()), now.Year()
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"month must be between 1 and 12 and year must be positive",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	budgets, err := uc.budgetRepo.FindByUserAndPeriod(ctx, input.ActorID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	start, end := PeriodBounds(month, year)

	results := make([]*entity.BudgetWithRealization, 0, len(budgets))
	for _, budget := range budgets {
		category, err := uc.categoryRepo.FindByID(ctx, budget.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find budget category: %w", err)
		}

		spent, err := uc.transactionRepo.SumByCategoryAndPeriod(ctx, input.ActorID, budget.CategoryID, entity.TransactionTypeExpense, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to sum category spending: %w", err)
		}

		results = append(results, &entity.BudgetWithRealization{
			Budget:   budget,
			Category: category,
			Spent:    spent,
		})
	}

	return &ListBudgetsOutput{Budgets: results}, nil
}

// PeriodBounds returns the half-open UTC interval [start, end) covering one
// calendar month.
func PeriodBounds(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
