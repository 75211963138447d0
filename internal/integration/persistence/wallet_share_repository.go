// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

// walletShareRepository implements the adapter.WalletShareRepository interface.
type walletShareRepository struct {
	db *gorm.DB
}

// NewWalletShareRepository creates a new wallet share repository instance.
func NewWalletShareRepository(db *gorm.DB) adapter.WalletShareRepository {
	return &walletShareRepository{
		db: db,
	}
}

// Create creates a new share grant in the database.
func (r *walletShareRepository) Create(ctx context.Context, share *entity.WalletShare) error {
	shareModel := model.WalletShareFromEntity(share)
	result := r.db.WithContext(ctx).Create(shareModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a share grant by its ID.
func (r *walletShareRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletShare, error) {
	var shareModel model.WalletShareModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&shareModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrShareNotFound
		}
		return nil, result.Error
	}
	return shareModel.ToEntity(), nil
}

// FindByWalletAndUser retrieves the grant for (wallet, recipient).
func (r *walletShareRepository) FindByWalletAndUser(ctx context.Context, walletID, sharedWithID uuid.UUID) (*entity.WalletShare, error) {
	var shareModel model.WalletShareModel
	result := r.db.WithContext(ctx).
		Where("wallet_id = ? AND shared_with_id = ?", walletID, sharedWithID).
		First(&shareModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrShareNotFound
		}
		return nil, result.Error
	}
	return shareModel.ToEntity(), nil
}

// FindByWallet retrieves all grants issued for a wallet.
func (r *walletShareRepository) FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.WalletShare, error) {
	var shareModels []model.WalletShareModel
	result := r.db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at ASC").
		Find(&shareModels)
	if result.Error != nil {
		return nil, result.Error
	}

	shares := make([]*entity.WalletShare, len(shareModels))
	for i, sm := range shareModels {
		shares[i] = sm.ToEntity()
	}
	return shares, nil
}

// FindSharedWithUser retrieves the wallets shared with a user, with the
// grant and owner name resolved. Soft-deleted wallets drop out of the join.
func (r *walletShareRepository) FindSharedWithUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletWithShare, error) {
	var shareModels []model.WalletShareModel
	result := r.db.WithContext(ctx).
		Preload("Wallet").
		Preload("Wallet.User").
		Where("shared_with_id = ?", userID).
		Order("created_at ASC").
		Find(&shareModels)
	if result.Error != nil {
		return nil, result.Error
	}

	wallets := make([]*entity.WalletWithShare, 0, len(shareModels))
	for _, sm := range shareModels {
		if sm.Wallet == nil {
			continue
		}
		ws := &entity.WalletWithShare{
			Wallet: sm.Wallet.ToEntity(),
			Share:  sm.ToEntity(),
		}
		if sm.Wallet.User != nil {
			ws.OwnerName = sm.Wallet.User.Username
		}
		wallets = append(wallets, ws)
	}
	return wallets, nil
}

// Update updates an existing grant.
func (r *walletShareRepository) Update(ctx context.Context, share *entity.WalletShare) error {
	shareModel := model.WalletShareFromEntity(share)
	result := r.db.WithContext(ctx).Save(shareModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a grant from the database.
func (r *walletShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.WalletShareModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
