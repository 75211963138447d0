// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

type fakeWalletRepo struct {
	wallets map[uuid.UUID]*entity.Wallet
}

func (r *fakeWalletRepo) Create(ctx context.Context, wallet *entity.Wallet) error {
	r.wallets[wallet.ID] = wallet
	return nil
}

func (r *fakeWalletRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error) {
	wallet, ok := r.wallets[id]
	if !ok {
		return nil, domainerror.ErrWalletNotFound
	}
	return wallet, nil
}

func (r *fakeWalletRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Wallet, error) {
	return nil, nil
}

func (r *fakeWalletRepo) FindByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (*entity.Wallet, error) {
	return nil, domainerror.ErrWalletNotFound
}

func (r *fakeWalletRepo) Update(ctx context.Context, wallet *entity.Wallet) error { return nil }

func (r *fakeWalletRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeWalletRepo) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeShareRepo struct {
	shares []*entity.WalletShare
}

func (r *fakeShareRepo) Create(ctx context.Context, share *entity.WalletShare) error {
	r.shares = append(r.shares, share)
	return nil
}

func (r *fakeShareRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletShare, error) {
	for _, s := range r.shares {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domainerror.ErrShareNotFound
}

func (r *fakeShareRepo) FindByWalletAndUser(ctx context.Context, walletID, sharedWithID uuid.UUID) (*entity.WalletShare, error) {
	for _, s := range r.shares {
		if s.WalletID == walletID && s.SharedWithID == sharedWithID {
			return s, nil
		}
	}
	return nil, domainerror.ErrShareNotFound
}

func (r *fakeShareRepo) FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.WalletShare, error) {
	return nil, nil
}

func (r *fakeShareRepo) FindSharedWithUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletWithShare, error) {
	return nil, nil
}

func (r *fakeShareRepo) Update(ctx context.Context, share *entity.WalletShare) error { return nil }

func (r *fakeShareRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.shares {
		if s.ID == id {
			r.shares = append(r.shares[:i], r.shares[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrShareNotFound
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) CreateAll(ctx context.Context, categories []*entity.Category) error {
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindByNameTypeAndUser(ctx context.Context, name string, categoryType entity.CategoryType, userID uuid.UUID) (*entity.Category, error) {
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeLedgerRepo struct {
	posted   []*entity.Transaction
	unposted []*entity.Transaction
}

func (r *fakeLedgerRepo) Post(ctx context.Context, transaction *entity.Transaction) error {
	r.posted = append(r.posted, transaction)
	return nil
}

func (r *fakeLedgerRepo) Unpost(ctx context.Context, transaction *entity.Transaction) error {
	r.unposted = append(r.unposted, transaction)
	return nil
}

func (r *fakeLedgerRepo) Repost(ctx context.Context, old, updated *entity.Transaction) error {
	return nil
}

func (r *fakeLedgerRepo) PostAll(ctx context.Context, transactions []*entity.Transaction) error {
	r.posted = append(r.posted, transactions...)
	return nil
}

func (r *fakeLedgerRepo) PostTransfer(ctx context.Context, outgoing, incoming, fee *entity.Transaction) error {
	return nil
}

type stubTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
}

func (r *stubTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return transaction, nil
}

func (r *stubTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithRefs, error) {
	return nil, nil
}

func (r *stubTransactionRepo) FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *stubTransactionRepo) CountByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubTransactionRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubTransactionRepo) CategoryTotals(ctx context.Context, userID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) ([]adapter.CategoryTotal, error) {
	return nil, nil
}

func (r *stubTransactionRepo) SumByCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type accessFixture struct {
	createUC *CreateTransactionUseCase
	deleteUC *DeleteTransactionUseCase

	walletRepo      *fakeWalletRepo
	shareRepo       *fakeShareRepo
	categoryRepo    *fakeCategoryRepo
	ledgerRepo      *fakeLedgerRepo
	transactionRepo *stubTransactionRepo

	ownerID  uuid.UUID
	otherID  uuid.UUID
	wallet   *entity.Wallet
	category *entity.Category
}

func newAccessFixture() *accessFixture {
	ownerID := uuid.New()
	otherID := uuid.New()
	wallet := entity.NewWallet(ownerID, "Dompet", entity.WalletTypeCash)
	category := entity.NewCategory(ownerID, "Makan & Minum", entity.CategoryTypeExpense)

	walletRepo := &fakeWalletRepo{wallets: map[uuid.UUID]*entity.Wallet{wallet.ID: wallet}}
	shareRepo := &fakeShareRepo{}
	categoryRepo := &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{category.ID: category}}
	ledgerRepo := &fakeLedgerRepo{}
	transactionRepo := &stubTransactionRepo{transactions: map[uuid.UUID]*entity.Transaction{}}

	return &accessFixture{
		createUC:        NewCreateTransactionUseCase(walletRepo, shareRepo, categoryRepo, ledgerRepo),
		deleteUC:        NewDeleteTransactionUseCase(transactionRepo, ledgerRepo),
		walletRepo:      walletRepo,
		shareRepo:       shareRepo,
		categoryRepo:    categoryRepo,
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		ownerID:         ownerID,
		otherID:         otherID,
		wallet:          wallet,
		category:        category,
	}
}

func (f *accessFixture) createInput(actorID uuid.UUID) CreateTransactionInput {
	return CreateTransactionInput{
		ActorID:     actorID,
		WalletID:    f.wallet.ID,
		CategoryID:  f.category.ID,
		Date:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Description: "makan siang",
		Amount:      decimal.RequireFromString("50"),
		Type:        entity.TransactionTypeExpense,
	}
}

func TestCreateTransactionUseCase_AccessControl(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can post into own wallet", func(t *testing.T) {
		f := newAccessFixture()

		output, err := f.createUC.Execute(ctx, f.createInput(f.ownerID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.Transaction.UserID != f.ownerID {
			t.Error("expected the posting to record the actor as its owner")
		}
		if len(f.ledgerRepo.posted) != 1 {
			t.Fatalf("expected 1 posting, got %d", len(f.ledgerRepo.posted))
		}
	})

	t.Run("user without grant is denied", func(t *testing.T) {
		f := newAccessFixture()

		_, err := f.createUC.Execute(ctx, f.createInput(f.otherID))
		if !errors.Is(err, domainerror.ErrWalletNotWritable) {
			t.Errorf("expected ErrWalletNotWritable, got %v", err)
		}
	})

	t.Run("view grant is denied", func(t *testing.T) {
		f := newAccessFixture()
		f.shareRepo.shares = append(f.shareRepo.shares,
			entity.NewWalletShare(f.wallet.ID, f.otherID, entity.SharePermissionView))

		_, err := f.createUC.Execute(ctx, f.createInput(f.otherID))
		if !errors.Is(err, domainerror.ErrWalletNotWritable) {
			t.Errorf("expected ErrWalletNotWritable, got %v", err)
		}
	})

	t.Run("add grant allows posting but category must be the actor's", func(t *testing.T) {
		f := newAccessFixture()
		f.shareRepo.shares = append(f.shareRepo.shares,
			entity.NewWalletShare(f.wallet.ID, f.otherID, entity.SharePermissionAdd))

		// The wallet owner's category does not belong to the collaborator.
		_, err := f.createUC.Execute(ctx, f.createInput(f.otherID))
		if !errors.Is(err, domainerror.ErrCategoryNotOwnedByUser) {
			t.Errorf("expected ErrCategoryNotOwnedByUser, got %v", err)
		}

		// With a category of their own the posting succeeds.
		own := entity.NewCategory(f.otherID, "Patungan", entity.CategoryTypeExpense)
		f.categoryRepo.categories[own.ID] = own

		input := f.createInput(f.otherID)
		input.CategoryID = own.ID
		output, err := f.createUC.Execute(ctx, input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.Transaction.WalletID != f.wallet.ID {
			t.Error("expected the posting to land in the shared wallet")
		}
		if output.Transaction.Transaction.UserID != f.otherID {
			t.Error("expected the collaborator to be recorded as the posting user")
		}
	})

	t.Run("revoked grant is denied again", func(t *testing.T) {
		f := newAccessFixture()
		share := entity.NewWalletShare(f.wallet.ID, f.otherID, entity.SharePermissionAdd)
		f.shareRepo.shares = append(f.shareRepo.shares, share)

		own := entity.NewCategory(f.otherID, "Patungan", entity.CategoryTypeExpense)
		f.categoryRepo.categories[own.ID] = own

		input := f.createInput(f.otherID)
		input.CategoryID = own.ID
		if _, err := f.createUC.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error while grant active: %v", err)
		}

		if err := f.shareRepo.Delete(ctx, share.ID); err != nil {
			t.Fatalf("failed to revoke grant: %v", err)
		}

		_, err := f.createUC.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrWalletNotWritable) {
			t.Errorf("expected ErrWalletNotWritable after revoke, got %v", err)
		}
	})

	t.Run("category type must match transaction type", func(t *testing.T) {
		f := newAccessFixture()

		input := f.createInput(f.ownerID)
		input.Type = entity.TransactionTypeIncome
		_, err := f.createUC.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrCategoryTypeMismatch) {
			t.Errorf("expected ErrCategoryTypeMismatch, got %v", err)
		}
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		f := newAccessFixture()

		input := f.createInput(f.ownerID)
		input.Amount = decimal.Zero
		_, err := f.createUC.Execute(ctx, input)
		if !errors.Is(err, domainerror.ErrInvalidTransactionAmount) {
			t.Errorf("expected ErrInvalidTransactionAmount, got %v", err)
		}
	})
}

func TestDeleteTransactionUseCase_RecorderOnly(t *testing.T) {
	ctx := context.Background()

	t.Run("recorder can delete own posting", func(t *testing.T) {
		f := newAccessFixture()

		posting := entity.NewTransaction(f.ownerID, f.wallet.ID, f.category.ID,
			time.Now().UTC(), "makan", decimal.RequireFromString("50"), entity.TransactionTypeExpense)
		f.transactionRepo.transactions[posting.ID] = posting

		output, err := f.deleteUC.Execute(ctx, DeleteTransactionInput{
			ActorID:       f.ownerID,
			TransactionID: posting.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success {
			t.Error("expected Success to be true")
		}
		if len(f.ledgerRepo.unposted) != 1 {
			t.Fatalf("expected 1 unposted transaction, got %d", len(f.ledgerRepo.unposted))
		}
	})

	t.Run("wallet owner cannot delete a collaborator's posting", func(t *testing.T) {
		f := newAccessFixture()

		posting := entity.NewTransaction(f.otherID, f.wallet.ID, f.category.ID,
			time.Now().UTC(), "patungan", decimal.RequireFromString("50"), entity.TransactionTypeExpense)
		f.transactionRepo.transactions[posting.ID] = posting

		_, err := f.deleteUC.Execute(ctx, DeleteTransactionInput{
			ActorID:       f.ownerID,
			TransactionID: posting.ID,
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
			t.Errorf("expected ErrNotAuthorizedToModifyTransaction, got %v", err)
		}
	})

	t.Run("deleting an unknown posting fails", func(t *testing.T) {
		f := newAccessFixture()

		_, err := f.deleteUC.Execute(ctx, DeleteTransactionInput{
			ActorID:       f.ownerID,
			TransactionID: uuid.New(),
		})
		if !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
