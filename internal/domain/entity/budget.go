// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a planned spending ceiling for one category in one
// (month, year) pair. Unique per (user, category, month, year); a second
// submission for the same key overwrites the amount.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Amount     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(userID, categoryID uuid.UUID, month, year int, amount decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Year:       year,
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BudgetWithRealization pairs a budget with the amount actually spent in the
// category during the budget's period.
type BudgetWithRealization struct {
	Budget   *Budget
	Category *Category
	Spent    decimal.Decimal
}
