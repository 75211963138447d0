// Package report contains reporting, export and import use cases.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/adapter"
)

// csvTimeLayout is the timestamp format used by both export and import.
const csvTimeLayout = "2006-01-02 15:04:05"

// csvHeader lists the export columns in order.
var csvHeader = []string{"Date", "Amount", "Description", "Type", "Category", "Wallet"}

// ExportCSVInput represents the input for exporting a user's ledger.
type ExportCSVInput struct {
	ActorID uuid.UUID
}

// ExportCSVOutput carries the rendered CSV document.
type ExportCSVOutput struct {
	Content  []byte
	Filename string
}

// ExportCSVUseCase renders the actor's full ledger as a CSV document.
type ExportCSVUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewExportCSVUseCase creates a new ExportCSVUseCase instance.
func NewExportCSVUseCase(transactionRepo adapter.TransactionRepository) *ExportCSVUseCase {
	return &ExportCSVUseCase{transactionRepo: transactionRepo}
}

// Execute exports every posting recorded by the actor, newest first.
func (uc *ExportCSVUseCase) Execute(ctx context.Context, input ExportCSVInput) (*ExportCSVOutput, error) {
	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{UserID: input.ActorID})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for export: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range transactions {
		var categoryName, walletName string
		if t.Category != nil {
			categoryName = t.Category.Name
		}
		if t.Wallet != nil {
			walletName = t.Wallet.Name
		}
		record := []string{
			t.Transaction.Date.Format(csvTimeLayout),
			t.Transaction.Amount.String(),
			t.Transaction.Description,
			string(t.Transaction.Type),
			categoryName,
			walletName,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return &ExportCSVOutput{
		Content:  buf.Bytes(),
		Filename: "transaksi.csv",
	}, nil
}
