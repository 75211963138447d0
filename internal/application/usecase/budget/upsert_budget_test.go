// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

type fakeBudgetRepo struct {
	budgets []*entity.Budget
}

func (r *fakeBudgetRepo) Create(ctx context.Context, budget *entity.Budget) error {
	r.budgets = append(r.budgets, budget)
	return nil
}

func (r *fakeBudgetRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	for _, b := range r.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByKey(ctx context.Context, userID, categoryID uuid.UUID, month, year int) (*entity.Budget, error) {
	for _, b := range r.budgets {
		if b.UserID == userID && b.CategoryID == categoryID && b.Month == month && b.Year == year {
			return b, nil
		}
	}
	return nil, domainerror.ErrBudgetNotFound
}

func (r *fakeBudgetRepo) FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, month, year int) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBudgetRepo) Update(ctx context.Context, budget *entity.Budget) error { return nil }

func (r *fakeBudgetRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeCategoryFinder struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryFinder) Create(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryFinder) CreateAll(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *fakeCategoryFinder) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryFinder) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryFinder) FindByNameTypeAndUser(ctx context.Context, name string, categoryType entity.CategoryType, userID uuid.UUID) (*entity.Category, error) {
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryFinder) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryFinder) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func TestUpsertBudgetUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	category := entity.NewCategory(actorID, "Makan & Minum", entity.CategoryTypeExpense)

	newFixture := func() (*UpsertBudgetUseCase, *fakeBudgetRepo) {
		budgetRepo := &fakeBudgetRepo{}
		categoryRepo := &fakeCategoryFinder{categories: map[uuid.UUID]*entity.Category{category.ID: category}}
		return NewUpsertBudgetUseCase(budgetRepo, categoryRepo), budgetRepo
	}

	t.Run("creates a budget for a new key", func(t *testing.T) {
		uc, budgetRepo := newFixture()

		output, err := uc.Execute(ctx, UpsertBudgetInput{
			ActorID:    actorID,
			CategoryID: category.ID,
			Month:      6,
			Year:       2025,
			Amount:     decimal.RequireFromString("500"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Created {
			t.Error("expected Created to be true for a new key")
		}
		if len(budgetRepo.budgets) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(budgetRepo.budgets))
		}
	})

	t.Run("overwrites the amount for an existing key", func(t *testing.T) {
		uc, budgetRepo := newFixture()

		first, err := uc.Execute(ctx, UpsertBudgetInput{
			ActorID:    actorID,
			CategoryID: category.ID,
			Month:      6,
			Year:       2025,
			Amount:     decimal.RequireFromString("500"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second, err := uc.Execute(ctx, UpsertBudgetInput{
			ActorID:    actorID,
			CategoryID: category.ID,
			Month:      6,
			Year:       2025,
			Amount:     decimal.RequireFromString("750"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if second.Created {
			t.Error("expected Created to be false for an existing key")
		}
		if second.Budget.ID != first.Budget.ID {
			t.Error("expected the same budget row to be reused")
		}
		if !second.Budget.Amount.Equal(decimal.RequireFromString("750")) {
			t.Errorf("expected amount 750, got %s", second.Budget.Amount)
		}
		if len(budgetRepo.budgets) != 1 {
			t.Fatalf("expected 1 budget after upsert, got %d", len(budgetRepo.budgets))
		}
	})

	t.Run("different period creates a separate budget", func(t *testing.T) {
		uc, budgetRepo := newFixture()

		for _, month := range []int{6, 7} {
			if _, err := uc.Execute(ctx, UpsertBudgetInput{
				ActorID:    actorID,
				CategoryID: category.ID,
				Month:      month,
				Year:       2025,
				Amount:     decimal.RequireFromString("500"),
			}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if len(budgetRepo.budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(budgetRepo.budgets))
		}
	})

	t.Run("rejects out-of-range month", func(t *testing.T) {
		uc, _ := newFixture()

		for _, month := range []int{0, 13, -1} {
			_, err := uc.Execute(ctx, UpsertBudgetInput{
				ActorID:    actorID,
				CategoryID: category.ID,
				Month:      month,
				Year:       2025,
				Amount:     decimal.RequireFromString("500"),
			})
			if !errors.Is(err, domainerror.ErrInvalidBudgetPeriod) {
				t.Errorf("month %d: expected ErrInvalidBudgetPeriod, got %v", month, err)
			}
		}
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		uc, _ := newFixture()

		_, err := uc.Execute(ctx, UpsertBudgetInput{
			ActorID:    actorID,
			CategoryID: category.ID,
			Month:      6,
			Year:       2025,
			Amount:     decimal.RequireFromString("-1"),
		})
		if !errors.Is(err, domainerror.ErrInvalidBudgetAmount) {
			t.Errorf("expected ErrInvalidBudgetAmount, got %v", err)
		}
	})

	t.Run("rejects category owned by another user", func(t *testing.T) {
		uc, _ := newFixture()

		_, err := uc.Execute(ctx, UpsertBudgetInput{
			ActorID:    uuid.New(),
			CategoryID: category.ID,
			Month:      6,
			Year:       2025,
			Amount:     decimal.RequireFromString("500"),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyCategory) {
			t.Errorf("expected ErrNotAuthorizedToModifyCategory, got %v", err)
		}
	})
}
