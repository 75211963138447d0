// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dompetku/backend/internal/application/adapter"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/domain/ledger"
	"github.com/dompetku/backend/internal/integration/persistence/model"
)

// ledgerRepository implements adapter.LedgerRepository. Balance writes go
// through the lockWallet and writeBalance helpers below: each method runs one
// gorm transaction in which the affected wallet rows are locked, the posting
// rows are written and the balance adjustments applied. The account-deletion
// cascade reuses the same helpers for its reversals.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// lockWallet loads a wallet row for update inside tx. SQLite serializes
// writers on its own and rejects FOR UPDATE, so the locking clause is only
// added on postgres.
func lockWallet(tx *gorm.DB, walletID uuid.UUID) (*model.WalletModel, error) {
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var walletModel model.WalletModel
	result := query.Where("id = ?", walletID).First(&walletModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrWalletNotFound
		}
		return nil, result.Error
	}
	return &walletModel, nil
}

// writeBalance persists a wallet's new balance.
func writeBalance(tx *gorm.DB, walletID uuid.UUID, balance decimal.Decimal) error {
	return tx.Model(&model.WalletModel{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    balance,
			"updated_at": time.Now().UTC(),
		}).Error
}

// Post inserts a transaction and applies its balance effect to the wallet.
func (r *ledgerRepository) Post(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, transaction.WalletID)
		if err != nil {
			return err
		}

		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}

		newBalance := ledger.Apply(wallet.Balance, transaction.Type, transaction.Amount)
		return writeBalance(tx, wallet.ID, newBalance)
	})
}

// Unpost reverses a transaction's balance effect and soft-deletes the row.
func (r *ledgerRepository) Unpost(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, transaction.WalletID)
		if err != nil {
			return err
		}

		result := tx.Delete(&model.TransactionModel{}, "id = ?", transaction.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTransactionNotFound
		}

		newBalance := ledger.Reverse(wallet.Balance, transaction.Type, transaction.Amount)
		return writeBalance(tx, wallet.ID, newBalance)
	})
}

// Repost replaces a posted transaction with an updated version. When the
// wallet changed, the old wallet gets the reversal and the new wallet the
// application; wallets are locked in a fixed order to avoid deadlocks.
func (r *ledgerRepository) Repost(ctx context.Context, old, updated *entity.Transaction) error {
	if old.ID != updated.ID {
		return domainerror.ErrTransactionNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if old.WalletID == updated.WalletID {
			wallet, err := lockWallet(tx, old.WalletID)
			if err != nil {
				return err
			}

			if err := saveTransaction(tx, updated); err != nil {
				return err
			}

			newBalance := wallet.Balance.Add(ledger.EditDelta(old, updated))
			return writeBalance(tx, wallet.ID, newBalance)
		}

		wallets, err := lockWallets(tx, []uuid.UUID{old.WalletID, updated.WalletID})
		if err != nil {
			return err
		}

		if err := saveTransaction(tx, updated); err != nil {
			return err
		}

		oldWallet := wallets[old.WalletID]
		newWallet := wallets[updated.WalletID]

		if err := writeBalance(tx, oldWallet.ID, ledger.Reverse(oldWallet.Balance, old.Type, old.Amount)); err != nil {
			return err
		}
		return writeBalance(tx, newWallet.ID, ledger.Apply(newWallet.Balance, updated.Type, updated.Amount))
	})
}

// PostAll inserts a batch of transactions and applies their aggregated
// balance effects. Used by the CSV import commit.
func (r *ledgerRepository) PostAll(ctx context.Context, transactions []*entity.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deltas := make(map[uuid.UUID]decimal.Decimal)
		for _, t := range transactions {
			deltas[t.WalletID] = deltas[t.WalletID].Add(ledger.Delta(t.Type, t.Amount))
		}

		walletIDs := make([]uuid.UUID, 0, len(deltas))
		for id := range deltas {
			walletIDs = append(walletIDs, id)
		}

		wallets, err := lockWallets(tx, walletIDs)
		if err != nil {
			return err
		}

		transactionModels := make([]*model.TransactionModel, len(transactions))
		for i, t := range transactions {
			transactionModels[i] = model.TransactionFromEntity(t)
		}
		if err := tx.Create(transactionModels).Error; err != nil {
			return err
		}

		for id, delta := range deltas {
			wallet := wallets[id]
			if err := writeBalance(tx, id, wallet.Balance.Add(delta)); err != nil {
				return err
			}
		}
		return nil
	})
}

// PostTransfer posts the legs of a transfer as one unit. The source balance
// is re-checked against the debit total inside the locked scope so two
// concurrent transfers cannot both pass the check.
func (r *ledgerRepository) PostTransfer(ctx context.Context, outgoing, incoming, fee *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallets, err := lockWallets(tx, []uuid.UUID{outgoing.WalletID, incoming.WalletID})
		if err != nil {
			return err
		}

		source := wallets[outgoing.WalletID]
		destination := wallets[incoming.WalletID]

		debit := outgoing.Amount
		legs := []*entity.Transaction{outgoing, incoming}
		if fee != nil {
			debit = debit.Add(fee.Amount)
			legs = append(legs, fee)
		}

		if source.Balance.LessThan(debit) {
			return domainerror.ErrInsufficientFunds
		}

		for _, leg := range legs {
			if err := tx.Create(model.TransactionFromEntity(leg)).Error; err != nil {
				return err
			}
		}

		if err := writeBalance(tx, source.ID, source.Balance.Sub(debit)); err != nil {
			return err
		}
		return writeBalance(tx, destination.ID, destination.Balance.Add(incoming.Amount))
	})
}

// lockWallets locks a set of wallet rows in ascending ID order so concurrent
// multi-wallet mutations acquire locks in the same sequence.
func lockWallets(tx *gorm.DB, walletIDs []uuid.UUID) (map[uuid.UUID]*model.WalletModel, error) {
	ids := make([]uuid.UUID, len(walletIDs))
	copy(ids, walletIDs)
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	wallets := make(map[uuid.UUID]*model.WalletModel, len(ids))
	for _, id := range ids {
		if _, ok := wallets[id]; ok {
			continue
		}
		wallet, err := lockWallet(tx, id)
		if err != nil {
			return nil, err
		}
		wallets[id] = wallet
	}
	return wallets, nil
}

// saveTransaction overwrites the mutable columns of an existing posting.
func saveTransaction(tx *gorm.DB, transaction *entity.Transaction) error {
	result := tx.Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"wallet_id":   transaction.WalletID,
			"category_id": transaction.CategoryID,
			"date":        transaction.Date,
			"description": transaction.Description,
			"amount":      transaction.Amount,
			"type":        string(transaction.Type),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
