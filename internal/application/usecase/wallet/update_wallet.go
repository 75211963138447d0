// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// UpdateWalletInput represents the input for wallet update. Balance cannot be
// edited directly: it only moves through ledger postings.
type UpdateWalletInput struct {
	ActorID  uuid.UUID
	WalletID uuid.UUID
	Name     *string
	Type     *entity.WalletType
}

// UpdateWalletOutput represents the output of wallet update.
type UpdateWalletOutput struct {
	Wallet *entity.Wallet
}

// UpdateWalletUseCase handles wallet update logic.
type UpdateWalletUseCase struct {
	walletRepo adapter.WalletRepository
}

// NewUpdateWalletUseCase creates a new UpdateWalletUseCase instance.
func NewUpdateWalletUseCase(walletRepo adapter.WalletRepository) *UpdateWalletUseCase {
	return &UpdateWalletUseCase{
		walletRepo: walletRepo,
	}
}

// Execute performs the wallet update.
func (uc *UpdateWalletUseCase) Execute(ctx context.Context, input UpdateWalletInput) (*UpdateWalletOutput, error) {
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
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeNotAuthorizedWallet,
			"not authorized to update this wallet",
			domainerror.ErrNotAuthorizedToModifyWallet,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxWalletNameLength {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeMissingWalletFields,
				fmt.Sprintf("wallet name is required and must not exceed %d characters", MaxWalletNameLength),
				nil,
			)
		}
		wallet.Name = name
	}

	if input.Type != nil {
		if !isValidWalletType(*input.Type) {
			return nil, domainerror.NewWalletError(
				domainerror.ErrCodeInvalidWalletType,
				"wallet type must be 'cash' or 'digital'",
				domainerror.ErrInvalidWalletType,
			)
		}
		wallet.Type = *input.Type
	}

	wallet.UpdatedAt = time.Now().UTC()

	if err := uc.walletRepo.Update(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	return &UpdateWalletOutput{Wallet: wallet}, nil
}
