// Package report contains reporting, export and import use cases.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

// MaxDisplayedRowErrors caps the number of per-row errors reported back.
const MaxDisplayedRowErrors = 10

// RowError describes one skipped import row. Row numbers are 1-based over
// the data rows, the header not counted.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ImportCSVInput represents the input for a bulk CSV import.
type ImportCSVInput struct {
	ActorID uuid.UUID
	Reader  io.Reader
}

// ImportCSVOutput reports the import outcome: how many rows landed, which
// rows were skipped and why (truncated for display), and the total number of
// skipped rows.
type ImportCSVOutput struct {
	Imported    int
	RowErrors   []RowError
	TotalErrors int
}

// ImportCSVUseCase ingests a six-column CSV ledger. Rows that fail to parse
// are skipped and reported; the surviving rows commit together at the end as
// one atomic batch.
type ImportCSVUseCase struct {
	categoryRepo adapter.CategoryRepository
	walletRepo   adapter.WalletRepository
	ledgerRepo   adapter.LedgerRepository
}

// NewImportCSVUseCase creates a new ImportCSVUseCase instance.
func NewImportCSVUseCase(
	categoryRepo adapter.CategoryRepository,
	walletRepo adapter.WalletRepository,
	ledgerRepo adapter.LedgerRepository,
) *ImportCSVUseCase {
	return &ImportCSVUseCase{
		categoryRepo: categoryRepo,
		walletRepo:   walletRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Execute runs the import. Categories and wallets named by rows are resolved
// or created on the fly; wallets materialize as cash wallets at balance zero
// and then receive the imported postings like any other.
func (uc *ImportCSVUseCase) Execute(ctx context.Context, input ImportCSVInput) (*ImportCSVOutput, error) {
	reader := csv.NewReader(input.Reader)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return &ImportCSVOutput{}, nil
		}
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidCSV,
			"could not read CSV header",
			domainerror.ErrInvalidCSV,
		)
	}

	var (
		pending   []*entity.Transaction
		rowErrors []RowError
		row       int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row, Reason: "malformed CSV row"})
			continue
		}

		transaction, reason := uc.parseRow(ctx, input.ActorID, record)
		if reason != "" {
			rowErrors = append(rowErrors, RowError{Row: row, Reason: reason})
			continue
		}
		pending = append(pending, transaction)
	}

	if len(pending) > 0 {
		if err := uc.ledgerRepo.PostAll(ctx, pending); err != nil {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeImportCommitFailed,
				"failed to commit imported transactions",
				errors.Join(domainerror.ErrImportCommitFailed, err),
			)
		}
	}

	output := &ImportCSVOutput{
		Imported:    len(pending),
		RowErrors:   rowErrors,
		TotalErrors: len(rowErrors),
	}
	if len(output.RowErrors) > MaxDisplayedRowErrors {
		output.RowErrors = output.RowErrors[:MaxDisplayedRowErrors]
	}
	return output, nil
}

// parseRow validates one data row and builds its posting. It returns a
// non-empty reason when the row must be skipped.
func (uc *ImportCSVUseCase) parseRow(ctx context.Context, actorID uuid.UUID, record []string) (*entity.Transaction, string) {
	if len(record) < 6 {
		return nil, "expected 6 columns"
	}

	date, err := time.Parse(csvTimeLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, fmt.Sprintf("invalid date %q", record[0])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, fmt.Sprintf("invalid amount %q", record[1])
	}
	if !amount.IsPositive() {
		return nil, "amount must be positive"
	}

	description := strings.TrimSpace(record[2])

	transactionType := entity.TransactionType(strings.TrimSpace(strings.ToLower(record[3])))
	if transactionType != entity.TransactionTypeIncome && transactionType != entity.TransactionTypeExpense {
		return nil, fmt.Sprintf("invalid type %q", record[3])
	}

	categoryName := strings.TrimSpace(record[4])
	if categoryName == "" {
		return nil, "category name is empty"
	}
	walletName := strings.TrimSpace(record[5])
	if walletName == "" {
		return nil, "wallet name is empty"
	}

	category, err := uc.resolveCategory(ctx, actorID, categoryName, entity.CategoryType(transactionType))
	if err != nil {
		return nil, fmt.Sprintf("failed to resolve category %q", categoryName)
	}

	wallet, err := uc.resolveWallet(ctx, actorID, walletName)
	if err != nil {
		return nil, fmt.Sprintf("failed to resolve wallet %q", walletName)
	}

	return entity.NewTransaction(actorID, wallet.ID, category.ID, date, description, amount, transactionType), ""
}

func (uc *ImportCSVUseCase) resolveCategory(ctx context.Context, actorID uuid.UUID, name string, categoryType entity.CategoryType) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByNameTypeAndUser(ctx, name, categoryType, actorID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, err
	}

	category = entity.NewCategory(actorID, name, categoryType)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (uc *ImportCSVUseCase) resolveWallet(ctx context.Context, actorID uuid.UUID, name string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.FindByNameAndUser(ctx, name, actorID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerror.ErrWalletNotFound) {
		return nil, err
	}

	wallet = entity.NewWallet(actorID, name, entity.WalletTypeCash)
	if err := uc.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}
