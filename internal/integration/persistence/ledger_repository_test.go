// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/domain/ledger"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.CategoryModel{},
		&model.WalletModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
		&model.WalletShareModel{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

type ledgerFixture struct {
	db *gorm.DB

	user    *entity.User
	expense *entity.Category
	income  *entity.Category
	walletA *entity.Wallet
	walletB *entity.Wallet
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	user := entity.NewUser("budi", "hash")
	if err := NewUserRepository(db).Create(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	categoryRepo := NewCategoryRepository(db)
	expense := entity.NewCategory(user.ID, "Makan & Minum", entity.CategoryTypeExpense)
	income := entity.NewCategory(user.ID, "Gaji", entity.CategoryTypeIncome)
	for _, c := range []*entity.Category{expense, income} {
		if err := categoryRepo.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	walletRepo := NewWalletRepository(db)
	walletA := entity.NewWallet(user.ID, "Dompet", entity.WalletTypeCash)
	walletB := entity.NewWallet(user.ID, "Bank", entity.WalletTypeDigital)
	for _, w := range []*entity.Wallet{walletA, walletB} {
		if err := walletRepo.Create(ctx, w); err != nil {
			t.Fatalf("failed to create wallet: %v", err)
		}
	}

	return &ledgerFixture{
		db:      db,
		user:    user,
		expense: expense,
		income:  income,
		walletA: walletA,
		walletB: walletB,
	}
}

// balanceOf reloads a wallet's cached balance.
func (f *ledgerFixture) balanceOf(t *testing.T, walletID uuid.UUID) decimal.Decimal {
	t.Helper()
	wallet, err := NewWalletRepository(f.db).FindByID(context.Background(), walletID)
	if err != nil {
		t.Fatalf("failed to reload wallet: %v", err)
	}
	return wallet.Balance
}

// assertInvariant checks that the cached balance equals the signed sum of the
// wallet's live postings.
func (f *ledgerFixture) assertInvariant(t *testing.T, walletID uuid.UUID) {
	t.Helper()
	postings, err := NewTransactionRepository(f.db).FindByWallet(context.Background(), walletID)
	if err != nil {
		t.Fatalf("failed to list postings: %v", err)
	}

	want := ledger.Sum(postings)
	got := f.balanceOf(t, walletID)
	if !got.Equal(want) {
		t.Errorf("balance invariant broken: cached %s, postings sum to %s", got, want)
	}
}

func (f *ledgerFixture) posting(wallet *entity.Wallet, category *entity.Category, amount string, transactionType entity.TransactionType) *entity.Transaction {
	return entity.NewTransaction(f.user.ID, wallet.ID, category.ID,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), "posting",
		decimal.RequireFromString(amount), transactionType)
}

func TestLedgerRepository_Post(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	repo := NewLedgerRepository(f.db)

	if err := repo.Post(ctx, f.posting(f.walletA, f.income, "1000", entity.TransactionTypeIncome)); err != nil {
		t.Fatalf("failed to post income: %v", err)
	}
	if err := repo.Post(ctx, f.posting(f.walletA, f.expense, "300", entity.TransactionTypeExpense)); err != nil {
		t.Fatalf("failed to post expense: %v", err)
	}

	if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("700")) {
		t.Errorf("expected balance 700, got %s", got)
	}
	f.assertInvariant(t, f.walletA.ID)
}

func TestLedgerRepository_Unpost(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	repo := NewLedgerRepository(f.db)

	income := f.posting(f.walletA, f.income, "1000", entity.TransactionTypeIncome)
	expense := f.posting(f.walletA, f.expense, "300", entity.TransactionTypeExpense)
	for _, p := range []*entity.Transaction{income, expense} {
		if err := repo.Post(ctx, p); err != nil {
			t.Fatalf("failed to post: %v", err)
		}
	}

	if err := repo.Unpost(ctx, expense); err != nil {
		t.Fatalf("failed to unpost: %v", err)
	}

	if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("1000")) {
		t.Errorf("expected balance 1000 after unpost, got %s", got)
	}
	f.assertInvariant(t, f.walletA.ID)

	t.Run("unposting twice fails and leaves the balance alone", func(t *testing.T) {
		if err := repo.Unpost(ctx, expense); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("expected balance unchanged at 1000, got %s", got)
		}
	})
}

func TestLedgerRepository_Repost(t *testing.T) {
	ctx := context.Background()

	t.Run("amount change on the same wallet", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		old := f.posting(f.walletA, f.income, "500", entity.TransactionTypeIncome)
		if err := repo.Post(ctx, old); err != nil {
			t.Fatalf("failed to post: %v", err)
		}

		updated := *old
		updated.Amount = decimal.RequireFromString("200")
		if err := repo.Repost(ctx, old, &updated); err != nil {
			t.Fatalf("failed to repost: %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("200")) {
			t.Errorf("expected balance 200, got %s", got)
		}
		f.assertInvariant(t, f.walletA.ID)
	})

	t.Run("type flip reverses the sign", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		old := f.posting(f.walletA, f.income, "500", entity.TransactionTypeIncome)
		if err := repo.Post(ctx, old); err != nil {
			t.Fatalf("failed to post: %v", err)
		}

		updated := *old
		updated.Type = entity.TransactionTypeExpense
		updated.CategoryID = f.expense.ID
		if err := repo.Repost(ctx, old, &updated); err != nil {
			t.Fatalf("failed to repost: %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("-500")) {
			t.Errorf("expected balance -500, got %s", got)
		}
		f.assertInvariant(t, f.walletA.ID)
	})

	t.Run("wallet change moves the effect across wallets", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		old := f.posting(f.walletA, f.income, "500", entity.TransactionTypeIncome)
		if err := repo.Post(ctx, old); err != nil {
			t.Fatalf("failed to post: %v", err)
		}

		updated := *old
		updated.WalletID = f.walletB.ID
		if err := repo.Repost(ctx, old, &updated); err != nil {
			t.Fatalf("failed to repost: %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.IsZero() {
			t.Errorf("expected source balance 0, got %s", got)
		}
		if got := f.balanceOf(t, f.walletB.ID); !got.Equal(decimal.RequireFromString("500")) {
			t.Errorf("expected destination balance 500, got %s", got)
		}
		f.assertInvariant(t, f.walletA.ID)
		f.assertInvariant(t, f.walletB.ID)
	})

	t.Run("mismatched IDs are rejected", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		old := f.posting(f.walletA, f.income, "500", entity.TransactionTypeIncome)
		other := f.posting(f.walletA, f.income, "500", entity.TransactionTypeIncome)
		if err := repo.Repost(ctx, old, other); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestLedgerRepository_PostAll(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	repo := NewLedgerRepository(f.db)

	batch := []*entity.Transaction{
		f.posting(f.walletA, f.income, "1000", entity.TransactionTypeIncome),
		f.posting(f.walletA, f.expense, "250", entity.TransactionTypeExpense),
		f.posting(f.walletB, f.income, "400", entity.TransactionTypeIncome),
	}
	if err := repo.PostAll(ctx, batch); err != nil {
		t.Fatalf("failed to post batch: %v", err)
	}

	if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("750")) {
		t.Errorf("expected wallet A balance 750, got %s", got)
	}
	if got := f.balanceOf(t, f.walletB.ID); !got.Equal(decimal.RequireFromString("400")) {
		t.Errorf("expected wallet B balance 400, got %s", got)
	}
	f.assertInvariant(t, f.walletA.ID)
	f.assertInvariant(t, f.walletB.ID)

	t.Run("empty batch is a no-op", func(t *testing.T) {
		if err := repo.PostAll(ctx, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestLedgerRepository_PostTransfer(t *testing.T) {
	ctx := context.Background()

	transferLegs := func(f *ledgerFixture, amount, fee string) (*entity.Transaction, *entity.Transaction, *entity.Transaction) {
		outgoing := f.posting(f.walletA, f.expense, amount, entity.TransactionTypeExpense)
		incoming := f.posting(f.walletB, f.income, amount, entity.TransactionTypeIncome)
		var feeLeg *entity.Transaction
		if fee != "" {
			feeLeg = f.posting(f.walletA, f.expense, fee, entity.TransactionTypeExpense)
		}
		return outgoing, incoming, feeLeg
	}

	t.Run("transfer with fee moves and burns the right amounts", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		if err := repo.Post(ctx, f.posting(f.walletA, f.income, "1000", entity.TransactionTypeIncome)); err != nil {
			t.Fatalf("failed to fund wallet: %v", err)
		}

		outgoing, incoming, fee := transferLegs(f, "300", "10")
		if err := repo.PostTransfer(ctx, outgoing, incoming, fee); err != nil {
			t.Fatalf("failed to post transfer: %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("690")) {
			t.Errorf("expected source balance 690, got %s", got)
		}
		if got := f.balanceOf(t, f.walletB.ID); !got.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected destination balance 300, got %s", got)
		}
		f.assertInvariant(t, f.walletA.ID)
		f.assertInvariant(t, f.walletB.ID)

		var count int64
		if err := f.db.Model(&model.TransactionModel{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count postings: %v", err)
		}
		if count != 4 {
			t.Errorf("expected 4 postings (funding plus 3 legs), got %d", count)
		}
	})

	t.Run("transfer without fee posts two legs", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		if err := repo.Post(ctx, f.posting(f.walletA, f.income, "1000", entity.TransactionTypeIncome)); err != nil {
			t.Fatalf("failed to fund wallet: %v", err)
		}

		outgoing, incoming, _ := transferLegs(f, "400", "")
		if err := repo.PostTransfer(ctx, outgoing, incoming, nil); err != nil {
			t.Fatalf("failed to post transfer: %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("600")) {
			t.Errorf("expected source balance 600, got %s", got)
		}
		if got := f.balanceOf(t, f.walletB.ID); !got.Equal(decimal.RequireFromString("400")) {
			t.Errorf("expected destination balance 400, got %s", got)
		}
	})

	t.Run("insufficient funds aborts every leg", func(t *testing.T) {
		f := newLedgerFixture(t)
		repo := NewLedgerRepository(f.db)

		if err := repo.Post(ctx, f.posting(f.walletA, f.income, "305", entity.TransactionTypeIncome)); err != nil {
			t.Fatalf("failed to fund wallet: %v", err)
		}

		outgoing, incoming, fee := transferLegs(f, "300", "10")
		if err := repo.PostTransfer(ctx, outgoing, incoming, fee); !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		if got := f.balanceOf(t, f.walletA.ID); !got.Equal(decimal.RequireFromString("305")) {
			t.Errorf("expected source balance unchanged at 305, got %s", got)
		}
		if got := f.balanceOf(t, f.walletB.ID); !got.IsZero() {
			t.Errorf("expected destination balance unchanged at 0, got %s", got)
		}

		var count int64
		if err := f.db.Model(&model.TransactionModel{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count postings: %v", err)
		}
		if count != 1 {
			t.Errorf("expected only the funding posting, got %d", count)
		}
	})
}
