// Package transfer contains the wallet-to-wallet transfer use case.
package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

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

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.categories = append(r.categories, category)
	return nil
}

func (r *fakeCategoryRepo) CreateAll(ctx context.Context, categories []*entity.Category) error {
	r.categories = append(r.categories, categories...)
	return nil
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) FindByNameTypeAndUser(ctx context.Context, name string, categoryType entity.CategoryType, userID uuid.UUID) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Name == name && c.Type == categoryType && c.UserID == userID {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeLedgerRepo struct {
	posted []*entity.Transaction
	err    error
}

func (r *fakeLedgerRepo) Post(ctx context.Context, transaction *entity.Transaction) error {
	r.posted = append(r.posted, transaction)
	return nil
}

func (r *fakeLedgerRepo) Unpost(ctx context.Context, transaction *entity.Transaction) error {
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
	if r.err != nil {
		return r.err
	}
	r.posted = append(r.posted, outgoing, incoming)
	if fee != nil {
		r.posted = append(r.posted, fee)
	}
	return nil
}

func newTransferFixture(balance string) (*TransferFundsUseCase, *fakeLedgerRepo, *fakeCategoryRepo, uuid.UUID, *entity.Wallet, *entity.Wallet) {
	actorID := uuid.New()
	from := entity.NewWallet(actorID, "Cash", entity.WalletTypeCash)
	from.Balance = decimal.RequireFromString(balance)
	to := entity.NewWallet(actorID, "Bank", entity.WalletTypeDigital)

	walletRepo := &fakeWalletRepo{wallets: map[uuid.UUID]*entity.Wallet{
		from.ID: from,
		to.ID:   to,
	}}
	categoryRepo := &fakeCategoryRepo{}
	ledgerRepo := &fakeLedgerRepo{}

	uc := NewTransferFundsUseCase(walletRepo, categoryRepo, ledgerRepo)
	return uc, ledgerRepo, categoryRepo, actorID, from, to
}

func TestTransferFundsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates outgoing, incoming and fee postings", func(t *testing.T) {
		uc, ledgerRepo, categoryRepo, actorID, from, to := newTransferFixture("1000")

		output, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("300"),
			Fee:          decimal.RequireFromString("10"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Postings) != 3 {
			t.Fatalf("expected 3 postings, got %d", len(output.Postings))
		}

		outgoing, incoming, fee := output.Postings[0], output.Postings[1], output.Postings[2]

		if outgoing.WalletID != from.ID || outgoing.Type != entity.TransactionTypeExpense {
			t.Errorf("outgoing posting should be an expense on the source wallet")
		}
		if !outgoing.Amount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected outgoing amount 300, got %s", outgoing.Amount)
		}

		if incoming.WalletID != to.ID || incoming.Type != entity.TransactionTypeIncome {
			t.Errorf("incoming posting should be an income on the destination wallet")
		}
		if !incoming.Amount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected incoming amount 300, got %s", incoming.Amount)
		}

		if fee.WalletID != from.ID || fee.Type != entity.TransactionTypeExpense {
			t.Errorf("fee posting should be an expense on the source wallet")
		}
		if !fee.Amount.Equal(decimal.RequireFromString("10")) {
			t.Errorf("expected fee amount 10, got %s", fee.Amount)
		}

		if len(ledgerRepo.posted) != 3 {
			t.Errorf("expected 3 postings in ledger, got %d", len(ledgerRepo.posted))
		}

		// Transfer categories created on demand with the right types.
		wantCategories := map[string]entity.CategoryType{
			entity.CategoryTransferOut: entity.CategoryTypeExpense,
			entity.CategoryTransferIn:  entity.CategoryTypeIncome,
			entity.CategoryTransferFee: entity.CategoryTypeExpense,
		}
		for name, categoryType := range wantCategories {
			if _, err := categoryRepo.FindByNameTypeAndUser(ctx, name, categoryType, actorID); err != nil {
				t.Errorf("expected category %q of type %s to exist: %v", name, categoryType, err)
			}
		}
	})

	t.Run("omits fee posting when fee is zero", func(t *testing.T) {
		uc, ledgerRepo, _, actorID, from, to := newTransferFixture("1000")

		output, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("300"),
			Fee:          decimal.Zero,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(output.Postings) != 2 {
			t.Fatalf("expected 2 postings, got %d", len(output.Postings))
		}
		if len(ledgerRepo.posted) != 2 {
			t.Errorf("expected 2 postings in ledger, got %d", len(ledgerRepo.posted))
		}
	})

	t.Run("reuses existing transfer categories", func(t *testing.T) {
		uc, _, categoryRepo, actorID, from, to := newTransferFixture("1000")

		existing := entity.NewCategory(actorID, entity.CategoryTransferOut, entity.CategoryTypeExpense)
		categoryRepo.categories = append(categoryRepo.categories, existing)

		output, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("100"),
			Fee:          decimal.Zero,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Postings[0].CategoryID != existing.ID {
			t.Errorf("expected outgoing posting to reuse existing category %s, got %s", existing.ID, output.Postings[0].CategoryID)
		}
	})

	t.Run("rejects transfer to the same wallet", func(t *testing.T) {
		uc, _, _, actorID, from, _ := newTransferFixture("1000")

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   from.ID,
			Amount:       decimal.RequireFromString("100"),
		})
		if !errors.Is(err, domainerror.ErrSameWalletTransfer) {
			t.Errorf("expected ErrSameWalletTransfer, got %v", err)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		uc, _, _, actorID, from, to := newTransferFixture("1000")

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.Zero,
		})
		if !errors.Is(err, domainerror.ErrInvalidTransferAmount) {
			t.Errorf("expected ErrInvalidTransferAmount, got %v", err)
		}
	})

	t.Run("rejects negative fee", func(t *testing.T) {
		uc, _, _, actorID, from, to := newTransferFixture("1000")

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("100"),
			Fee:          decimal.RequireFromString("-1"),
		})
		if !errors.Is(err, domainerror.ErrInvalidTransferFee) {
			t.Errorf("expected ErrInvalidTransferFee, got %v", err)
		}
	})

	t.Run("rejects insufficient funds including fee", func(t *testing.T) {
		uc, _, _, actorID, from, to := newTransferFixture("305")

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("300"),
			Fee:          decimal.RequireFromString("10"),
		})
		if !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("rejects wallet not owned by actor", func(t *testing.T) {
		uc, _, _, actorID, from, to := newTransferFixture("1000")
		to.UserID = uuid.New()

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   to.ID,
			Amount:       decimal.RequireFromString("100"),
		})
		if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyWallet) {
			t.Errorf("expected ErrNotAuthorizedToModifyWallet, got %v", err)
		}
	})

	t.Run("rejects unknown wallet", func(t *testing.T) {
		uc, _, _, actorID, from, _ := newTransferFixture("1000")

		_, err := uc.Execute(ctx, TransferFundsInput{
			ActorID:      actorID,
			FromWalletID: from.ID,
			ToWalletID:   uuid.New(),
			Amount:       decimal.RequireFromString("100"),
		})
		if !errors.Is(err, domainerror.ErrWalletNotFound) {
			t.Errorf("expected ErrWalletNotFound, got %v", err)
		}
	})
}
