// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// UpsertBudgetInput represents the input for setting a budget.
type UpsertBudgetInput struct {
	ActorID    uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Amount     decimal.Decimal
}

// UpsertBudgetOutput represents the output after setting a budget.
type UpsertBudgetOutput struct {
	Budget  *entity.Budget
	Created bool
}

// UpsertBudgetUseCase sets the budget for one (category, month, year). A
// second submission for the same key overwrites the amount instead of
// creating a duplicate row.
type UpsertBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpsertBudgetUseCase creates a new UpsertBudgetUseCase instance.
func NewUpsertBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *UpsertBudgetUseCase {
	return &UpsertBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute sets the budget, creating or overwriting as needed.
func (uc *UpsertBudgetUseCase) Execute(ctx context.Context, input UpsertBudgetInput) (*UpsertBudgetOutput, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 1 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"month must be between 1 and 12 and year must be positive",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	if input.Amount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != input.ActorID {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			"not authorized to use this category",
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}

	existing, err := uc.budgetRepo.FindByKey(ctx, input.ActorID, input.CategoryID, input.Month, input.Year)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find budget: %w", err)
		}

		budget := entity.NewBudget(input.ActorID, input.CategoryID, input.Month, input.Year, input.Amount)
		if err := uc.budgetRepo.Create(ctx, budget); err != nil {
			return nil, fmt.Errorf("failed to create budget: %w", err)
		}
		return &UpsertBudgetOutput{Budget: budget, Created: true}, nil
	}

	existing.Amount = input.Amount
	if err := uc.budgetRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}
	return &UpsertBudgetOutput{Budget: existing, Created: false}, nil
}
