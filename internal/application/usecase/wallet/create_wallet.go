// Package wallet contains wallet-related use cases.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

const (
	// MaxWalletNameLength is the maximum allowed length for wallet names.
	MaxWalletNameLength = 100
)

// CreateWalletInput represents the input for wallet creation.
type CreateWalletInput struct {
	ActorID        uuid.UUID
	Name           string
	Type           entity.WalletType
	OpeningBalance decimal.Decimal
}

// CreateWalletOutput represents the output of wallet creation.
type CreateWalletOutput struct {
	Wallet *entity.Wallet
}

// CreateWalletUseCase handles wallet creation logic.
type CreateWalletUseCase struct {
	walletRepo   adapter.WalletRepository
	categoryRepo adapter.CategoryRepository
	ledgerRepo   adapter.LedgerRepository
}

// NewCreateWalletUseCase creates a new CreateWalletUseCase instance.
func NewCreateWalletUseCase(
	walletRepo adapter.WalletRepository,
	categoryRepo adapter.CategoryRepository,
	ledgerRepo adapter.LedgerRepository,
) *CreateWalletUseCase {
	return &CreateWalletUseCase{
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute performs the wallet creation. The wallet starts at zero; a positive
// opening balance is recorded as an ordinary income posting against the
// "Saldo Awal" category, so the balance always equals the sum of postings.
func (uc *CreateWalletUseCase) Execute(ctx context.Context, input CreateWalletInput) (*CreateWalletOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxWalletNameLength {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeMissingWalletFields,
			fmt.Sprintf("wallet name is required and must not exceed %d characters", MaxWalletNameLength),
			nil,
		)
	}

	if !isValidWalletType(input.Type) {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeInvalidWalletType,
			"wallet type must be 'cash' or 'digital'",
			domainerror.ErrInvalidWalletType,
		)
	}

	if input.OpeningBalance.IsNegative() {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeNegativeOpeningBalance,
			"opening balance must not be negative",
			domainerror.ErrNegativeOpeningBalance,
		)
	}

	wallet := entity.NewWallet(input.ActorID, name, input.Type)
	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if input.OpeningBalance.IsPositive() {
		category, err := uc.resolveOpeningCategory(ctx, input.ActorID)
		if err != nil {
			return nil, err
		}

		opening := entity.NewTransaction(
			input.ActorID,
			wallet.ID,
			category.ID,
			time.Now().UTC(),
			"Saldo awal "+wallet.Name,
			input.OpeningBalance,
			entity.TransactionTypeIncome,
		)
		if err := uc.ledgerRepo.Post(ctx, opening); err != nil {
			return nil, fmt.Errorf("failed to post opening balance: %w", err)
		}
		wallet.Balance = input.OpeningBalance
	}

	return &CreateWalletOutput{Wallet: wallet}, nil
}

// resolveOpeningCategory finds or creates the per-user "Saldo Awal" category.
func (uc *CreateWalletUseCase) resolveOpeningCategory(ctx context.Context, userID uuid.UUID) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByNameTypeAndUser(ctx, entity.CategoryOpeningBalance, entity.CategoryTypeIncome, userID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to resolve opening balance category: %w", err)
	}

	category = entity.NewCategory(userID, entity.CategoryOpeningBalance, entity.CategoryTypeIncome)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create opening balance category: %w", err)
	}
	return category, nil
}

// isValidWalletType validates the wallet type.
func isValidWalletType(walletType entity.WalletType) bool {
	return walletType == entity.WalletTypeCash || walletType == entity.WalletTypeDigital
}
