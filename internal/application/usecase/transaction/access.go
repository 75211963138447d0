// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// walletPolicy evaluates whether an actor may record postings against a
// wallet: either the actor owns it, or holds an "add" grant. A "view" grant
// is not enough.
type walletPolicy struct {
	walletRepo adapter.WalletRepository
	shareRepo  adapter.WalletShareRepository
}

// resolveWritable loads the wallet and authorizes the actor to post into it.
func (p *walletPolicy) resolveWritable(ctx context.Context, walletID, actorID uuid.UUID) (*entity.Wallet, error) {
	wallet, err := p.walletRepo.FindByID(ctx, walletID)
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

	if wallet.UserID == actorID {
		return wallet, nil
	}

	share, err := p.shareRepo.FindByWalletAndUser(ctx, walletID, actorID)
	if err != nil {
		if errors.Is(err, domainerror.ErrShareNotFound) {
			return nil, notWritableError()
		}
		return nil, fmt.Errorf("failed to find wallet share: %w", err)
	}
	if !share.CanAdd() {
		return nil, notWritableError()
	}

	return wallet, nil
}

func notWritableError() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeWalletNotWritable,
		"not permitted to add transactions to this wallet",
		domainerror.ErrWalletNotWritable,
	)
}

// resolveCategory loads the category and checks ownership plus type
// consistency with the posting.
func resolveCategory(
	ctx context.Context,
	categoryRepo adapter.CategoryRepository,
	categoryID, actorID uuid.UUID,
	transactionType entity.TransactionType,
) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if category.UserID != actorID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	if string(category.Type) != string(transactionType) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTypeMismatch,
			"transaction type does not match category type",
			domainerror.ErrCategoryTypeMismatch,
		)
	}

	return category, nil
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}
