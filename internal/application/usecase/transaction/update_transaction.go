// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	ActorID       uuid.UUID
	TransactionID uuid.UUID
	WalletID      *uuid.UUID
	CategoryID    *uuid.UUID
	Date          *time.Time
	Description   *string
	Amount        *decimal.Decimal
	Type          *entity.TransactionType
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.TransactionWithRefs
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	policy          walletPolicy
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	ledgerRepo      adapter.LedgerRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	walletRepo adapter.WalletRepository,
	shareRepo adapter.WalletShareRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	ledgerRepo adapter.LedgerRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		policy:          walletPolicy{walletRepo: walletRepo, shareRepo: shareRepo},
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		ledgerRepo:      ledgerRepo,
	}
}

// Execute performs the transaction update. The old posting's effect is
// reversed on its wallet and the new effect applied on the (possibly
// different) target wallet, as one atomic unit. Only the recording user may
// edit a transaction, even inside a wallet shared by someone else.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	old, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if old.UserID != input.ActorID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	updated := *old
	if input.Date != nil {
		updated.Date = *input.Date
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Type != nil {
		updated.Type = *input.Type
	}
	if input.WalletID != nil {
		updated.WalletID = *input.WalletID
	}
	if input.CategoryID != nil {
		updated.CategoryID = *input.CategoryID
	}

	if err := validatePostingFields(updated.Description, updated.Amount, updated.Type); err != nil {
		return nil, err
	}

	// The destination wallet must be writable by the recorder whenever the
	// posting moves; the creation rule applies to the new target.
	var wallet *entity.Wallet
	if updated.WalletID != old.WalletID {
		wallet, err = uc.policy.resolveWritable(ctx, updated.WalletID, input.ActorID)
		if err != nil {
			return nil, err
		}
	} else {
		wallet, err = uc.policy.walletRepo.FindByID(ctx, updated.WalletID)
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
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, updated.CategoryID, input.ActorID, updated.Type)
	if err != nil {
		return nil, err
	}

	updated.UpdatedAt = time.Now().UTC()

	if err := uc.ledgerRepo.Repost(ctx, old, &updated); err != nil {
		return nil, fmt.Errorf("failed to repost transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: &entity.TransactionWithRefs{
			Transaction: &updated,
			Category:    category,
			Wallet:      wallet,
		},
	}, nil
}
