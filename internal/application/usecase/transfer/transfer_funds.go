// Package transfer contains the wallet-to-wallet transfer use case.
package transfer

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

// TransferFundsInput represents the input for a wallet-to-wallet transfer.
type TransferFundsInput struct {
	ActorID      uuid.UUID
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Description  string
	Date         time.Time
}

// TransferFundsOutput represents the output of a transfer: the postings
// created, in order outgoing, incoming, fee (fee omitted when zero).
type TransferFundsOutput struct {
	Postings []*entity.Transaction
}

// TransferFundsUseCase composes a transfer into ordinary ledger postings so
// it is visible in every report: an expense on the source wallet, an income
// on the destination wallet, and an optional fee expense on the source.
type TransferFundsUseCase struct {
	walletRepo   adapter.WalletRepository
	categoryRepo adapter.CategoryRepository
	ledgerRepo   adapter.LedgerRepository
}

// NewTransferFundsUseCase creates a new TransferFundsUseCase instance.
func NewTransferFundsUseCase(
	walletRepo adapter.WalletRepository,
	categoryRepo adapter.CategoryRepository,
	ledgerRepo adapter.LedgerRepository,
) *TransferFundsUseCase {
	return &TransferFundsUseCase{
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute performs the transfer. All postings and balance updates commit as
// one atomic unit; the insufficient-funds check runs again inside the locked
// transaction scope, so two concurrent transfers cannot both spend the same
// balance.
func (uc *TransferFundsUseCase) Execute(ctx context.Context, input TransferFundsInput) (*TransferFundsOutput, error) {
	if input.FromWalletID == input.ToWalletID {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeSameWalletTransfer,
			"cannot transfer to the same wallet",
			domainerror.ErrSameWalletTransfer,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeInvalidTransferAmount,
			"transfer amount must be positive",
			domainerror.ErrInvalidTransferAmount,
		)
	}

	if input.Fee.IsNegative() {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeInvalidTransferFee,
			"transfer fee must not be negative",
			domainerror.ErrInvalidTransferFee,
		)
	}

	from, err := uc.resolveOwnedWallet(ctx, input.FromWalletID, input.ActorID)
	if err != nil {
		return nil, err
	}
	to, err := uc.resolveOwnedWallet(ctx, input.ToWalletID, input.ActorID)
	if err != nil {
		return nil, err
	}

	// Early balance gate; the authoritative check repeats inside the locked
	// posting transaction.
	if from.Balance.LessThan(input.Amount.Add(input.Fee)) {
		return nil, domainerror.NewTransferError(
			domainerror.ErrCodeInsufficientFunds,
			"insufficient funds",
			domainerror.ErrInsufficientFunds,
		)
	}

	outCategory, err := uc.resolveTransferCategory(ctx, input.ActorID, entity.CategoryTransferOut, entity.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	inCategory, err := uc.resolveTransferCategory(ctx, input.ActorID, entity.CategoryTransferIn, entity.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Transfer %s -> %s", from.Name, to.Name)
	}

	outgoing := entity.NewTransaction(input.ActorID, from.ID, outCategory.ID, date, description, input.Amount, entity.TransactionTypeExpense)
	incoming := entity.NewTransaction(input.ActorID, to.ID, inCategory.ID, date, description, input.Amount, entity.TransactionTypeIncome)

	var fee *entity.Transaction
	if input.Fee.IsPositive() {
		feeCategory, err := uc.resolveTransferCategory(ctx, input.ActorID, entity.CategoryTransferFee, entity.CategoryTypeExpense)
		if err != nil {
			return nil, err
		}
		fee = entity.NewTransaction(input.ActorID, from.ID, feeCategory.ID, date, description, input.Fee, entity.TransactionTypeExpense)
	}

	if err := uc.ledgerRepo.PostTransfer(ctx, outgoing, incoming, fee); err != nil {
		if errors.Is(err, domainerror.ErrInsufficientFunds) {
			return nil, domainerror.NewTransferError(
				domainerror.ErrCodeInsufficientFunds,
				"insufficient funds",
				domainerror.ErrInsufficientFunds,
			)
		}
		return nil, fmt.Errorf("failed to post transfer: %w", err)
	}

	postings := []*entity.Transaction{outgoing, incoming}
	if fee != nil {
		postings = append(postings, fee)
	}

	return &TransferFundsOutput{Postings: postings}, nil
}

// resolveOwnedWallet loads a wallet and requires the actor to own it.
// Transfers never cross ownership boundaries, shared or not.
func (uc *TransferFundsUseCase) resolveOwnedWallet(ctx context.Context, walletID, actorID uuid.UUID) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.FindByID(ctx, walletID)
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

	if wallet.UserID != actorID {
		return nil, domainerror.NewWalletError(
			domainerror.ErrCodeNotAuthorizedWallet,
			"not authorized to use this wallet",
			domainerror.ErrNotAuthorizedToModifyWallet,
		)
	}

	return wallet, nil
}

// resolveTransferCategory finds or creates one of the well-known transfer
// categories for the actor; creation is idempotent per (name, type, user).
func (uc *TransferFundsUseCase) resolveTransferCategory(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	categoryType entity.CategoryType,
) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByNameTypeAndUser(ctx, name, categoryType, userID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to resolve transfer category %q: %w", name, err)
	}

	category = entity.NewCategory(userID, name, categoryType)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create transfer category %q: %w", name, err)
	}
	return category, nil
}
