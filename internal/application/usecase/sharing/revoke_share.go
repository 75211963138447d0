// Package sharing contains wallet sharing use cases.
package sharing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// RevokeShareInput represents the input for revoking a wallet share grant.
type RevokeShareInput struct {
	ActorID uuid.UUID
	ShareID uuid.UUID
}

// RevokeShareUseCase removes a share grant. Only the wallet owner may revoke;
// transactions the recipient already recorded stay in the wallet.
type RevokeShareUseCase struct {
	shareRepo  adapter.WalletShareRepository
	walletRepo adapter.WalletRepository
}

// NewRevokeShareUseCase creates a new RevokeShareUseCase instance.
func NewRevokeShareUseCase(shareRepo adapter.WalletShareRepository, walletRepo adapter.WalletRepository) *RevokeShareUseCase {
	return &RevokeShareUseCase{
		shareRepo:  shareRepo,
		walletRepo: walletRepo,
	}
}

// Execute revokes the grant after verifying the actor owns the wallet.
func (uc *RevokeShareUseCase) Execute(ctx context.Context, input RevokeShareInput) error {
	share, err := uc.shareRepo.FindByID(ctx, input.ShareID)
	if err != nil {
		if errors.Is(err, domainerror.ErrShareNotFound) {
			return domainerror.NewSharingError(
				domainerror.ErrCodeShareNotFound,
				"wallet share not found",
				domainerror.ErrShareNotFound,
			)
		}
		return fmt.Errorf("failed to find share: %w", err)
	}

	wallet, err := uc.walletRepo.FindByID(ctx, share.WalletID)
	if err != nil {
		return fmt.Errorf("failed to find shared wallet: %w", err)
	}

	if wallet.UserID != input.ActorID {
		return domainerror.NewSharingError(
			domainerror.ErrCodeNotAuthorizedToShare,
			"only the wallet owner may revoke a share",
			domainerror.ErrNotAuthorizedToShare,
		)
	}

	if err := uc.shareRepo.Delete(ctx, input.ShareID); err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}

	return nil
}
