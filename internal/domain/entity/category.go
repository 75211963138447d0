// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Well-known category names created on demand by the transfer orchestrator
// and the wallet opening-balance posting.
const (
	CategoryTransferOut    = "Transfer (Keluar)"
	CategoryTransferIn     = "Transfer (Masuk)"
	CategoryTransferFee    = "Biaya Transfer"
	CategoryOpeningBalance = "Saldo Awal"
)

// Category represents a transaction classification owned by exactly one user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      CategoryType
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, name string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StarterCategory describes one entry of the fixed set seeded at registration.
type StarterCategory struct {
	Name string
	Type CategoryType
}

// StarterCategories is the fixed set created for every new user.
var StarterCategories = []StarterCategory{
	{Name: "Gaji", Type: CategoryTypeIncome},
	{Name: "Makan & Minum", Type: CategoryTypeExpense},
	{Name: "Transportasi", Type: CategoryTypeExpense},
	{Name: "Belanja", Type: CategoryTypeExpense},
	{Name: "Tagihan", Type: CategoryTypeExpense},
	{Name: "Lainnya", Type: CategoryTypeExpense},
}
