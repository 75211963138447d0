// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dompetku/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
// One row per (user, category, month, year).
type BudgetModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_key"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_key"`
	Month      int             `gorm:"not null;index:idx_budgets_key"`
	Year       int             `gorm:"not null;index:idx_budgets_key"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:         m.ID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID,
		Month:      m.Month,
		Year:       m.Year,
		Amount:     m.Amount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	m := &BudgetModel{
		ID:         budget.ID,
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Month:      budget.Month,
		Year:       budget.Year,
		Amount:     budget.Amount,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
	if budget.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}
	return m
}
