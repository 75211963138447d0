// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
)

// ListWalletsInput represents the input for wallet listing.
type ListWalletsInput struct {
	ActorID uuid.UUID
}

// ListWalletsOutput represents the output of wallet listing: wallets the
// actor owns plus wallets shared with them.
type ListWalletsOutput struct {
	Owned  []*entity.Wallet
	Shared []*entity.WalletWithShare
}

// ListWalletsUseCase handles wallet listing logic.
type ListWalletsUseCase struct {
	walletRepo adapter.WalletRepository
	shareRepo  adapter.WalletShareRepository
}

// NewListWalletsUseCase creates a new ListWalletsUseCase instance.
func NewListWalletsUseCase(
	walletRepo adapter.WalletRepository,
	shareRepo adapter.WalletShareRepository,
) *ListWalletsUseCase {
	return &ListWalletsUseCase{
		walletRepo: walletRepo,
		shareRepo:  shareRepo,
	}
}

// Execute lists owned and shared wallets for the actor.
func (uc *ListWalletsUseCase) Execute(ctx context.Context, input ListWalletsInput) (*ListWalletsOutput, error) {
	owned, err := uc.walletRepo.FindByUser(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	shared, err := uc.shareRepo.FindSharedWithUser(ctx, input.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared wallets: %w", err)
	}

	return &ListWalletsOutput{
		Owned:  owned,
		Shared: shared,
	}, nil
}
