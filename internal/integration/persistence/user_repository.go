// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/domain/ledger"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.UserFromEntity(user)
	result := r.db.WithContext(ctx).Create(userModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// FindByUsername retrieves a user by their username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.UserModel
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUserNotFound
		}
		return nil, result.Error
	}
	return userModel.ToEntity(), nil
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("username = ?", username).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Delete removes a user and all rows owned by them in one transaction.
// Postings the user recorded into other owners' shared wallets are unposted
// first, so the surviving balances keep matching their postings.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var walletIDs []uuid.UUID
		if err := tx.Model(&model.WalletModel{}).
			Where("user_id = ?", id).
			Pluck("id", &walletIDs).Error; err != nil {
			return err
		}

		if err := reverseForeignPostings(tx, id, walletIDs); err != nil {
			return err
		}

		if len(walletIDs) > 0 {
			if err := tx.Unscoped().
				Where("wallet_id IN ?", walletIDs).
				Delete(&model.WalletShareModel{}).Error; err != nil {
				return err
			}
			// Collaborator postings into the user's wallets go away with
			// the wallets they reference.
			if err := tx.Unscoped().
				Where("wallet_id IN ?", walletIDs).
				Delete(&model.TransactionModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().
			Where("shared_with_id = ?", id).
			Delete(&model.WalletShareModel{}).Error; err != nil {
			return err
		}

		for _, m := range []interface{}{
			&model.TransactionModel{},
			&model.BudgetModel{},
			&model.WalletModel{},
			&model.CategoryModel{},
			&model.RefreshTokenModel{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&model.UserModel{}, "id = ?", id).Error
	})
}

// reverseForeignPostings reverses the balance effect of every live posting
// the user recorded into wallets they do not own, before those rows are
// deleted with the account.
func reverseForeignPostings(tx *gorm.DB, userID uuid.UUID, ownWalletIDs []uuid.UUID) error {
	query := tx.Where("user_id = ?", userID)
	if len(ownWalletIDs) > 0 {
		query = query.Where("wallet_id NOT IN ?", ownWalletIDs)
	}

	var postings []model.TransactionModel
	if err := query.Find(&postings).Error; err != nil {
		return err
	}
	if len(postings) == 0 {
		return nil
	}

	deltas := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range postings {
		reversal := ledger.Delta(entity.TransactionType(p.Type), p.Amount).Neg()
		deltas[p.WalletID] = deltas[p.WalletID].Add(reversal)
	}

	walletIDs := make([]uuid.UUID, 0, len(deltas))
	for walletID := range deltas {
		walletIDs = append(walletIDs, walletID)
	}

	wallets, err := lockWallets(tx, walletIDs)
	if err != nil {
		return err
	}
	for walletID, delta := range deltas {
		if err := writeBalance(tx, walletID, wallets[walletID].Balance.Add(delta)); err != nil {
			return err
		}
	}
	return nil
}
