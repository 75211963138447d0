// Package sharing contains wallet sharing use cases.
package sharing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// ShareWalletInput represents the input for granting wallet access.
type ShareWalletInput struct {
	ActorID    uuid.UUID
	WalletID   uuid.UUID
	Username   string
	Permission entity.SharePermission
}

// ShareWalletOutput represents the output after granting wallet access.
type ShareWalletOutput struct {
	Share *entity.WalletShare
}

// ShareWalletUseCase grants another user access to a wallet. Re-sharing with
// the same recipient updates the permission on the existing grant.
type ShareWalletUseCase struct {
	walletRepo adapter.WalletRepository
	userRepo   adapter.UserRepository
	shareRepo  adapter.WalletShareRepository
}

// NewShareWalletUseCase creates a new ShareWalletUseCase instance.
func NewShareWalletUseCase(
	walletRepo adapter.WalletRepository,
	userRepo adapter.UserRepository,
	shareRepo adapter.WalletShareRepository,
) *ShareWalletUseCase {
	return &ShareWalletUseCase{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		shareRepo:  shareRepo,
	}
}

// Execute grants or updates the share. Only the wallet owner may share.
func (uc *ShareWalletUseCase) Execute(ctx context.Context, input ShareWalletInput) (*ShareWalletOutput, error) {
	if input.Permission != entity.SharePermissionView && input.Permission != entity.SharePermissionAdd {
		return nil, domainerror.NewSharingError(
			domainerror.ErrCodeInvalidSharePermission,
			"permission must be view or add",
			domainerror.ErrInvalidSharePermission,
		)
	}

	wallet, err := uc.walletRepo.FindByID(ctx, input.WalletID)
	if err != nil {
		if errors.Is(err, domainerror.ErrWalletNotFound) {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeWalletNotFound,
				"wallet not found",
				domainerror.ErrWalletNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	if wallet.UserID != input.ActorID {
		return nil, domainerror.NewSharingError(
			domainerror.ErrCodeNotAuthorizedToShare,
			"only the wallet owner may share it",
			domainerror.ErrNotAuthorizedToShare,
		)
	}

	recipient, err := uc.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewSharingError(
				domainerror.ErrCodeRecipientNotFound,
				"recipient user not found",
				domainerror.ErrRecipientNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find recipient: %w", err)
	}

	if recipient.ID == input.ActorID {
		return nil, domainerror.NewSharingError(
			domainerror.ErrCodeInvalidSharePermission,
			"cannot share a wallet with yourself",
			domainerror.ErrInvalidSharePermission,
		)
	}

	existing, err := uc.shareRepo.FindByWalletAndUser(ctx, input.WalletID, recipient.ID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrShareNotFound) {
			return nil, fmt.Errorf("failed to find share: %w", err)
		}

		share := entity.NewWalletShare(input.WalletID, recipient.ID, input.Permission)
		if err := uc.shareRepo.Create(ctx, share); err != nil {
			return nil, fmt.Errorf("failed to create share: %w", err)
		}
		return &ShareWalletOutput{Share: share}, nil
	}

	existing.Permission = input.Permission
	if err := uc.shareRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update share: %w", err)
	}
	return &ShareWalletOutput{Share: existing}, nil
}
