// Package report contains reporting, export and import use cases.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

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

type fakeWalletRepo struct {
	wallets []*entity.Wallet
}

func (r *fakeWalletRepo) Create(ctx context.Context, wallet *entity.Wallet) error {
	r.wallets = append(r.wallets, wallet)
	return nil
}

func (r *fakeWalletRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error) {
	for _, w := range r.wallets {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domainerror.ErrWalletNotFound
}

func (r *fakeWalletRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Wallet, error) {
	return r.wallets, nil
}

func (r *fakeWalletRepo) FindByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (*entity.Wallet, error) {
	for _, w := range r.wallets {
		if w.Name == name && w.UserID == userID {
			return w, nil
		}
	}
	return nil, domainerror.ErrWalletNotFound
}

func (r *fakeWalletRepo) Update(ctx context.Context, wallet *entity.Wallet) error { return nil }

func (r *fakeWalletRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeWalletRepo) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range r.wallets {
		if w.UserID == userID {
			total = total.Add(w.Balance)
		}
	}
	return total, nil
}

type fakeLedgerRepo struct {
	batches [][]*entity.Transaction
	err     error
}

func (r *fakeLedgerRepo) Post(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (r *fakeLedgerRepo) Unpost(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (r *fakeLedgerRepo) Repost(ctx context.Context, old, updated *entity.Transaction) error {
	return nil
}

func (r *fakeLedgerRepo) PostAll(ctx context.Context, transactions []*entity.Transaction) error {
	if r.err != nil {
		return r.err
	}
	r.batches = append(r.batches, transactions)
	return nil
}

func (r *fakeLedgerRepo) PostTransfer(ctx context.Context, outgoing, incoming, fee *entity.Transaction) error {
	return nil
}

func TestImportCSVUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	newFixture := func() (*ImportCSVUseCase, *fakeCategoryRepo, *fakeWalletRepo, *fakeLedgerRepo) {
		categoryRepo := &fakeCategoryRepo{}
		walletRepo := &fakeWalletRepo{}
		ledgerRepo := &fakeLedgerRepo{}
		return NewImportCSVUseCase(categoryRepo, walletRepo, ledgerRepo), categoryRepo, walletRepo, ledgerRepo
	}

	t.Run("bad rows are skipped and good rows commit together", func(t *testing.T) {
		uc, _, _, ledgerRepo := newFixture()

		input := strings.Join([]string{
			"Date,Amount,Description,Type,Category,Wallet",
			"2025-06-01 09:00:00,50000,makan siang,expense,Makan & Minum,Dompet",
			"2025-06-02 10:00:00,2000000,gaji,income,Gaji,Bank",
			"2025-06-03 11:00:00,not-a-number,rusak,expense,Makan & Minum,Dompet",
			"2025-06-04 12:00:00,15000,bensin,expense,Transportasi,Dompet",
			"2025-06-05 13:00:00,30000,pulsa,expense,Tagihan,Dompet",
		}, "\n")

		output, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader(input)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Imported != 4 {
			t.Errorf("expected 4 imported rows, got %d", output.Imported)
		}
		if output.TotalErrors != 1 {
			t.Fatalf("expected 1 row error, got %d", output.TotalErrors)
		}
		if output.RowErrors[0].Row != 3 {
			t.Errorf("expected the error on data row 3, got %d", output.RowErrors[0].Row)
		}
		if !strings.Contains(output.RowErrors[0].Reason, "amount") {
			t.Errorf("expected an amount error, got %q", output.RowErrors[0].Reason)
		}

		if len(ledgerRepo.batches) != 1 {
			t.Fatalf("expected one atomic batch, got %d", len(ledgerRepo.batches))
		}
		if len(ledgerRepo.batches[0]) != 4 {
			t.Errorf("expected 4 postings in the batch, got %d", len(ledgerRepo.batches[0]))
		}
	})

	t.Run("categories and wallets are created on the fly and reused", func(t *testing.T) {
		uc, categoryRepo, walletRepo, _ := newFixture()

		input := strings.Join([]string{
			"Date,Amount,Description,Type,Category,Wallet",
			"2025-06-01 09:00:00,50000,makan siang,expense,Makan & Minum,Dompet",
			"2025-06-02 09:00:00,25000,kopi,expense,Makan & Minum,Dompet",
			"2025-06-03 09:00:00,60000,makan malam,expense,Makan & Minum,Bank",
		}, "\n")

		output, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader(input)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Imported != 3 {
			t.Errorf("expected 3 imported rows, got %d", output.Imported)
		}

		if len(categoryRepo.categories) != 1 {
			t.Errorf("expected 1 category created, got %d", len(categoryRepo.categories))
		}
		if len(walletRepo.wallets) != 2 {
			t.Errorf("expected 2 wallets created, got %d", len(walletRepo.wallets))
		}
		for _, w := range walletRepo.wallets {
			if w.Type != entity.WalletTypeCash {
				t.Errorf("expected imported wallet %q to default to cash, got %s", w.Name, w.Type)
			}
			if !w.Balance.IsZero() {
				t.Errorf("expected imported wallet %q to start at zero, got %s", w.Name, w.Balance)
			}
		}
	})

	t.Run("invalid date and type produce row errors", func(t *testing.T) {
		uc, _, _, _ := newFixture()

		input := strings.Join([]string{
			"Date,Amount,Description,Type,Category,Wallet",
			"01/06/2025,50000,makan,expense,Makan & Minum,Dompet",
			"2025-06-02 10:00:00,50000,makan,transfer,Makan & Minum,Dompet",
			"2025-06-03 10:00:00,50000,makan,expense,Makan & Minum,Dompet",
		}, "\n")

		output, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader(input)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Imported != 1 {
			t.Errorf("expected 1 imported row, got %d", output.Imported)
		}
		if output.TotalErrors != 2 {
			t.Fatalf("expected 2 row errors, got %d", output.TotalErrors)
		}
		if output.RowErrors[0].Row != 1 || output.RowErrors[1].Row != 2 {
			t.Errorf("expected errors on rows 1 and 2, got %d and %d", output.RowErrors[0].Row, output.RowErrors[1].Row)
		}
	})

	t.Run("row errors are truncated for display but fully counted", func(t *testing.T) {
		uc, _, _, _ := newFixture()

		lines := []string{"Date,Amount,Description,Type,Category,Wallet"}
		for i := 0; i < 15; i++ {
			lines = append(lines, fmt.Sprintf("2025-06-01 09:00:00,bad,desc %d,expense,Makan & Minum,Dompet", i))
		}

		output, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader(strings.Join(lines, "\n"))})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.TotalErrors != 15 {
			t.Errorf("expected 15 total errors, got %d", output.TotalErrors)
		}
		if len(output.RowErrors) != MaxDisplayedRowErrors {
			t.Errorf("expected %d displayed errors, got %d", MaxDisplayedRowErrors, len(output.RowErrors))
		}
	})

	t.Run("empty file imports nothing", func(t *testing.T) {
		uc, _, _, ledgerRepo := newFixture()

		output, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader("")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Imported != 0 || output.TotalErrors != 0 {
			t.Errorf("expected empty result, got %+v", output)
		}
		if len(ledgerRepo.batches) != 0 {
			t.Errorf("expected no batch commit for an empty file")
		}
	})

	t.Run("commit failure fails the whole batch", func(t *testing.T) {
		uc, _, _, ledgerRepo := newFixture()
		ledgerRepo.err = errors.New("store unavailable")

		input := strings.Join([]string{
			"Date,Amount,Description,Type,Category,Wallet",
			"2025-06-01 09:00:00,50000,makan siang,expense,Makan & Minum,Dompet",
		}, "\n")

		_, err := uc.Execute(ctx, ImportCSVInput{ActorID: actorID, Reader: strings.NewReader(input)})
		if !errors.Is(err, domainerror.ErrImportCommitFailed) {
			t.Errorf("expected ErrImportCommitFailed, got %v", err)
		}
	})
}
