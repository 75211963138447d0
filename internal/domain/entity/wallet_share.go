// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SharePermission represents the capability level of a wallet grant.
type SharePermission string

const (
	// SharePermissionView allows the recipient to see the wallet and its postings.
	SharePermissionView SharePermission = "view"
	// SharePermissionAdd additionally allows the recipient to record postings.
	SharePermissionAdd SharePermission = "add"
)

// WalletShare is a capability grant: one wallet shared by its owner with
// another user. A grant never includes deletion, re-sharing, or balance edits
// beyond adding transactions when permission is "add".
type WalletShare struct {
	ID           uuid.UUID
	WalletID     uuid.UUID
	SharedWithID uuid.UUID
	Permission   SharePermission
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewWalletShare creates a new WalletShare entity.
func NewWalletShare(walletID, sharedWithID uuid.UUID, permission SharePermission) *WalletShare {
	now := time.Now().UTC()

	return &WalletShare{
		ID:           uuid.New(),
		WalletID:     walletID,
		SharedWithID: sharedWithID,
		Permission:   permission,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CanAdd reports whether the grant allows recording postings.
func (s *WalletShare) CanAdd() bool {
	return s.Permission == SharePermissionAdd
}
