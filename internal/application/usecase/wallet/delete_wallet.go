// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// DeleteWalletInput represents the input for wallet deletion.
type DeleteWalletInput struct {
	ActorID  uuid.UUID
	WalletID uuid.UUID
}

// DeleteWalletOutput represents the output of wallet deletion.
type DeleteWalletOutput struct {
	Success bool
}

// DeleteWalletUseCase handles wallet deletion logic.
type DeleteWalletUseCase struct {
	walletRepo      adapter.WalletRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteWalletUseCase creates a new DeleteWalletUseCase instance.
func NewDeleteWalletUseCase(
	walletRepo adapter.WalletRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteWalletUseCase {
	return &DeleteWalletUseCase{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the wallet deletion. A wallet with postings cannot be
// deleted; its transactions must be deleted or moved first.
func (uc *DeleteWalletUseCase) Execute(ctx context.Context, input DeleteWalletInput) (*DeleteWalletOutput, error) {
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
			"not authorized to delete this wallet",
			domainerror.ErrNotAuthorizedToModifyWallet,
		)
	}

	count, err := uc.transactionRepo.CountByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count wallet transactions: %w", err)
	}
	if count > 0 {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeWalletHasTransactions,
			"wallet has transactions and cannot be deleted",
			domainerror.ErrWalletHasTransactions,
		)
	}

	if err := uc.walletRepo.Delete(ctx, wallet.ID); err != nil {
		return nil, fmt.Errorf("failed to delete wallet: %w", err)
	}

	return &DeleteWalletOutput{Success: true}, nil
}
