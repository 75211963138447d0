// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	WalletID  *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
}

// CategoryTotal represents the aggregated amount for one category in a period.
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// TransactionRepository defines the read side of transaction persistence.
// All writes go through LedgerRepository so that every mutation carries its
// balance effect in the same atomic unit.
type TransactionRepository interface {
	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first,
	// with category and wallet resolved.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionWithRefs, error)

	// FindByWallet retrieves all postings of one wallet.
	FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.Transaction, error)

	// CountByWallet counts live postings of one wallet (wallet-deletion guard).
	CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)

	// CountByCategory counts live postings referencing one category (category-deletion guard).
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// CategoryTotals aggregates signed-irrelevant per-category sums of one
	// transaction type for a user within [start, end).
	CategoryTotals(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) ([]CategoryTotal, error)

	// SumByCategoryAndPeriod sums amounts of one type for one category within
	// [start, end) (budget realization).
	SumByCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) (decimal.Decimal, error)
}
