// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
)

func TestUpdateTransactionUseCase_MissingWallet(t *testing.T) {
	ctx := context.Background()
	f := newAccessFixture()

	updateUC := NewUpdateTransactionUseCase(
		f.walletRepo, f.shareRepo, f.transactionRepo, f.categoryRepo, f.ledgerRepo)

	posting := entity.NewTransaction(f.ownerID, f.wallet.ID, f.category.ID,
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), "makan siang",
		decimal.RequireFromString("50"), entity.TransactionTypeExpense)
	f.transactionRepo.transactions[posting.ID] = posting

	// The posting's wallet row is gone; an amount-only edit keeps the same
	// wallet and must still surface a coded wallet error.
	delete(f.walletRepo.wallets, f.wallet.ID)

	amount := decimal.RequireFromString("75")
	_, err := updateUC.Execute(ctx, UpdateTransactionInput{
		ActorID:       f.ownerID,
		TransactionID: posting.ID,
		Amount:        &amount,
	})

	var walErr *domainerror.WalletError
	if !errors.As(err, &walErr) {
		t.Fatalf("expected a coded wallet error, got %v", err)
	}
	if walErr.Code != domainerror.ErrCodeWalletNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeWalletNotFound, walErr.Code)
	}
}
