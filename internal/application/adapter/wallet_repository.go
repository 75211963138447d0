// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/domain/entity"
)

// WalletRepository defines the interface for wallet persistence operations.
// Balance mutation is deliberately absent: balances change only through
// LedgerRepository postings.
type WalletRepository interface {
	// Create creates a new wallet in the database.
	Create(ctx context.Context, wallet *entity.Wallet) error

	// FindByID retrieves a wallet by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Wallet, error)

	// FindByUser retrieves all wallets owned by a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Wallet, error)

	// FindByNameAndUser retrieves a wallet by name for an owner (import resolution).
	// Returns ErrWalletNotFound when absent.
	FindByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (*entity.Wallet, error)

	// Update updates a wallet's name and type. Balance is not written.
	Update(ctx context.Context, wallet *entity.Wallet) error

	// Delete soft-deletes a wallet from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalBalance sums the balances of all wallets owned by the user.
	TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
