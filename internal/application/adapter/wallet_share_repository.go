// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/domain/entity"
)

// WalletShareRepository defines the interface for wallet share grant persistence.
type WalletShareRepository interface {
	// Create creates a new share grant in the database.
	Create(ctx context.Context, share *entity.WalletShare) error

	// FindByID retrieves a share grant by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WalletShare, error)

	// FindByWalletAndUser retrieves the grant for (wallet, recipient).
	// Returns ErrShareNotFound when absent.
	FindByWalletAndUser(ctx context.Context, walletID, sharedWithID uuid.UUID) (*entity.WalletShare, error)

	// FindByWallet retrieves all grants issued for a wallet.
	FindByWallet(ctx context.Context, walletID uuid.UUID) ([]*entity.WalletShare, error)

	// FindSharedWithUser retrieves the wallets shared with a user, with the
	// grant and owner name resolved.
	FindSharedWithUser(ctx context.Context, userID uuid.UUID) ([]*entity.WalletWithShare, error)

	// Update updates an existing grant (permission change).
	Update(ctx context.Context, share *entity.WalletShare) error

	// Delete removes a grant from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
