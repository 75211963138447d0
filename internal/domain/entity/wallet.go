// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletType represents the kind of money container.
type WalletType string

const (
	WalletTypeCash    WalletType = "cash"
	WalletTypeDigital WalletType = "digital"
)

// Wallet represents a named money container owned by exactly one user.
// Balance is a cache: it must equal the signed sum of the wallet's postings
// after every committed mutation.
type Wallet struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      WalletType
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewWallet creates a new Wallet entity with a zero balance. Opening funds are
// recorded as an ordinary posting, never written to Balance directly.
func NewWallet(userID uuid.UUID, name string, walletType WalletType) *Wallet {
	now := time.Now().UTC()

	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      walletType,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WalletWithShare pairs a wallet with the grant through which the viewer sees it.
type WalletWithShare struct {
	Wallet    *Wallet
	Share     *WalletShare
	OwnerName string
}
