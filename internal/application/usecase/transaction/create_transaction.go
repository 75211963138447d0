// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 200
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	ActorID     uuid.UUID
	WalletID    uuid.UUID
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.TransactionWithRefs
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	policy       walletPolicy
	categoryRepo adapter.CategoryRepository
	ledgerRepo   adapter.LedgerRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	walletRepo adapter.WalletRepository,
	shareRepo adapter.WalletShareRepository,
	categoryRepo adapter.CategoryRepository,
	ledgerRepo adapter.LedgerRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		policy:       walletPolicy{walletRepo: walletRepo, shareRepo: shareRepo},
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute performs the transaction creation. The posting and its balance
// effect on the wallet commit as one atomic unit.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validatePostingFields(input.Description, input.Amount, input.Type); err != nil {
		return nil, err
	}

	wallet, err := uc.policy.resolveWritable(ctx, input.WalletID, input.ActorID)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID, input.ActorID, input.Type)
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.ActorID,
		wallet.ID,
		category.ID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
	)

	if err := uc.ledgerRepo.Post(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: &entity.TransactionWithRefs{
			Transaction: transaction,
			Category:    category,
			Wallet:      wallet,
		},
	}, nil
}

// validatePostingFields checks the shared field rules of create and update.
func validatePostingFields(description string, amount decimal.Decimal, transactionType entity.TransactionType) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			nil,
		)
	}

	if !isValidTransactionType(transactionType) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be positive",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	return nil
}
