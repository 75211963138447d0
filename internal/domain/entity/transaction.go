// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// Transaction represents one atomic ledger entry. Amount is always
// non-negative; sign is derived solely from Type. UserID is the user who
// recorded the entry, which may differ from the wallet's owner when the
// wallet is shared.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    uuid.UUID
	CategoryID  uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	walletID uuid.UUID,
	categoryID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		WalletID:    walletID,
		CategoryID:  categoryID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionWithRefs represents a transaction with its category and wallet
// resolved, as needed by listings and exports.
type TransactionWithRefs struct {
	Transaction *Transaction
	Category    *Category
	Wallet      *Wallet
}
