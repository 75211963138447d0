// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository
// interface. It is read-only: every write travels through ledgerRepository
// so the balance effect commits in the same unit.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions matching the filter, newest first.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithRefs, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Wallet").
		Where("user_id = ?", filter.UserID)

	if filter.WalletID != nil {
		query = query.Where("wallet_id = ?", *filter.WalletID)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", *filter.EndDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}

	var transactionModels []model.TransactionModel
	result := query.Order("date DESC, created_at DESC").Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithRefs, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithRefs()
	}
	return transactions, nil
}

// FindByWallet retrieves all postings of one wallet, oldest first.
func (r *transactionRepository) FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// CountByWallet counts live postings of one wallet.
func (r *transactionRepository) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("wallet_id = ?", walletID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// CountByCategory counts live postings referencing one category.
func (r *transactionRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// CategoryTotals aggregates per-category sums of one transaction type for a
// user within [start, end).
func (r *transactionRepository) CategoryTotals(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) ([]adapter.CategoryTotal, error) {
	var totals []adapter.CategoryTotal
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ?", userID, string(transactionType)).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Where("transactions.deleted_at IS NULL").
		Group("transactions.category_id, categories.name").
		Order("total DESC").
		Scan(&totals)
	if result.Error != nil {
		return nil, result.Error
	}
	return totals, nil
}

// SumByCategoryAndPeriod sums amounts of one type for one category within
// [start, end).
func (r *transactionRepository) SumByCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("SUM(amount)").
		Where("user_id = ? AND category_id = ? AND type = ?", userID, categoryID, string(transactionType)).
		Where("date >= ? AND date < ?", start, end).
		Scan(&sum)
	if result.Error != nil {
		return decimal.Zero, result.Error
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
