// Package report contains reporting, export and import use cases.
package report

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

type stubTransactionRepo struct {
	listed []*entity.TransactionWithRefs
	totals map[entity.TransactionType][]adapter.CategoryTotal
}

func (r *stubTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *stubTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithRefs, error) {
	return r.listed, nil
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
	return r.totals[transactionType], nil
}

func (r *stubTransactionRepo) SumByCategoryAndPeriod(ctx context.Context, userID, categoryID uuid.UUID, transactionType entity.TransactionType, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func TestExportCSVUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	category := entity.NewCategory(actorID, "Makan & Minum", entity.CategoryTypeExpense)
	wallet := entity.NewWallet(actorID, "Dompet", entity.WalletTypeCash)
	posting := entity.NewTransaction(actorID, wallet.ID, category.ID,
		time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), "makan siang",
		decimal.RequireFromString("50000"), entity.TransactionTypeExpense)

	repo := &stubTransactionRepo{listed: []*entity.TransactionWithRefs{
		{Transaction: posting, Category: category, Wallet: wallet},
	}}
	uc := NewExportCSVUseCase(repo)

	output, err := uc.Execute(ctx, ExportCSVInput{ActorID: actorID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(output.Content))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}

	wantHeader := []string{"Date", "Amount", "Description", "Type", "Category", "Wallet"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header column %d: expected %q, got %q", i, col, records[0][i])
		}
	}

	row := records[1]
	if row[0] != "2025-06-01 09:30:00" {
		t.Errorf("expected formatted date, got %q", row[0])
	}
	if row[1] != "50000" {
		t.Errorf("expected amount 50000, got %q", row[1])
	}
	if row[3] != "expense" || row[4] != "Makan & Minum" || row[5] != "Dompet" {
		t.Errorf("unexpected row content: %v", row)
	}
}

func TestExportCSVUseCase_MissingReferences(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	// A posting whose wallet or category row no longer exists still exports,
	// with the missing names left blank.
	posting := entity.NewTransaction(actorID, uuid.New(), uuid.New(),
		time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), "titipan",
		decimal.RequireFromString("100"), entity.TransactionTypeIncome)

	repo := &stubTransactionRepo{listed: []*entity.TransactionWithRefs{
		{Transaction: posting},
	}}
	uc := NewExportCSVUseCase(repo)

	output, err := uc.Execute(ctx, ExportCSVInput{ActorID: actorID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(output.Content))).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}

	row := records[1]
	if row[4] != "" || row[5] != "" {
		t.Errorf("expected blank category and wallet names, got %q and %q", row[4], row[5])
	}
}

func TestSummaryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	repo := &stubTransactionRepo{totals: map[entity.TransactionType][]adapter.CategoryTotal{
		entity.TransactionTypeExpense: {
			{CategoryName: "Makan & Minum", Total: decimal.RequireFromString("300")},
			{CategoryName: "Transportasi", Total: decimal.RequireFromString("120")},
		},
		entity.TransactionTypeIncome: {
			{CategoryName: "Gaji", Total: decimal.RequireFromString("2000")},
		},
	}}

	wallet := entity.NewWallet(actorID, "Dompet", entity.WalletTypeCash)
	wallet.Balance = decimal.RequireFromString("1580")
	walletRepo := &fakeWalletRepo{wallets: []*entity.Wallet{wallet}}

	uc := NewSummaryUseCase(walletRepo, repo)

	output, err := uc.Execute(ctx, SummaryInput{ActorID: actorID, Month: 6, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !output.TotalBalance.Equal(decimal.RequireFromString("1580")) {
		t.Errorf("expected total balance 1580, got %s", output.TotalBalance)
	}
	if !output.PeriodExpense.Equal(decimal.RequireFromString("420")) {
		t.Errorf("expected period expense 420, got %s", output.PeriodExpense)
	}
	if !output.PeriodIncome.Equal(decimal.RequireFromString("2000")) {
		t.Errorf("expected period income 2000, got %s", output.PeriodIncome)
	}
	if len(output.ExpenseByCategory) != 2 {
		t.Errorf("expected 2 expense categories, got %d", len(output.ExpenseByCategory))
	}
}
