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

// WalletShareGrant pairs a grant with the resolved recipient username.
type WalletShareGrant struct {
	Share    *entity.WalletShare
	Username string
}

// ListWalletSharesInput represents the input for listing a wallet's grants.
type ListWalletSharesInput struct {
	ActorID  uuid.UUID
	WalletID uuid.UUID
}

// ListWalletSharesOutput represents a wallet's outstanding grants.
type ListWalletSharesOutput struct {
	Grants []*WalletShareGrant
}

// ListWalletSharesUseCase lists the grants issued for one wallet. Owner only.
type ListWalletSharesUseCase struct {
	walletRepo adapter.WalletRepository
	shareRepo  adapter.WalletShareRepository
	userRepo   adapter.UserRepository
}

// NewListWalletSharesUseCase creates a new ListWalletSharesUseCase instance.
func NewListWalletSharesUseCase(
	walletRepo adapter.WalletRepository,
	shareRepo adapter.WalletShareRepository,
	userRepo adapter.UserRepository,
) *ListWalletSharesUseCase {
	return &ListWalletSharesUseCase{
		walletRepo: walletRepo,
		shareRepo:  shareRepo,
		userRepo:   userRepo,
	}
}

// Execute lists the grants with recipient usernames resolved.
func (uc *ListWalletSharesUseCase) Execute(ctx context.Context, input ListWalletSharesInput) (*ListWalletSharesOutput, error) {
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
			"only the wallet owner may list its shares",
			domainerror.ErrNotAuthorizedToShare,
		)
	}

	shares, err := uc.shareRepo.FindByWallet(ctx, input.WalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	grants := make([]*WalletShareGrant, 0, len(shares))
	for _, share := range shares {
		recipient, err := uc.userRepo.FindByID(ctx, share.SharedWithID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve share recipient: %w", err)
		}
		grants = append(grants, &WalletShareGrant{Share: share, Username: recipient.Username})
	}

	return &ListWalletSharesOutput{Grants: grants}, nil
}

// ListSharedWithMeInput represents the input for listing wallets shared with the actor.
type ListSharedWithMeInput struct {
	ActorID uuid.UUID
}

// ListSharedWithMeOutput represents the wallets shared with the actor.
type ListSharedWithMeOutput struct {
	Wallets []*entity.WalletWithShare
}

// ListSharedWithMeUseCase lists the wallets other users shared with the actor.
type ListSharedWithMeUseCase struct {
	shareRepo adapter.WalletShareRepository
}

// NewListSharedWithMeUseCase creates a new ListSharedWithMeUseCase instance.
func NewListSharedWithMeUseCase(shareRepo adapter.WalletShareRepository) *ListSharedWithMeUseCase {
	return &ListSharedWithMeUseCase{shareRepo: shareRepo}
}

// Execute lists the shared wallets with grant and owner name resolved.
func (uc *ListSharedWithMeUseCase) Execute(ctx context.Context, input ListSharedWithMeInput) (*ListSharedWithMeOutput, error) {
	wallets, err := uc.shareRepo.FindSharedWithUser(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared wallets: %w", err)
	}

	return &ListSharedWithMeOutput{Wallets: wallets}, nil
}
