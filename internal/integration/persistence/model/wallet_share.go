// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/domain/entity"
)

// WalletShareModel represents the wallet_shares table in the database.
// One grant per (wallet, recipient); revocation deletes the row outright.
type WalletShareModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	WalletID     uuid.UUID `gorm:"type:uuid;not null;index:idx_wallet_shares_key"`
	SharedWithID uuid.UUID `gorm:"type:uuid;not null;index:idx_wallet_shares_key"`
	Permission   string    `gorm:"type:varchar(10);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Wallet     *WalletModel `gorm:"foreignKey:WalletID;references:ID"`
	SharedWith *UserModel   `gorm:"foreignKey:SharedWithID;references:ID"`
}

// TableName returns the table name for the WalletShareModel.
func (WalletShareModel) TableName() string {
	return "wallet_shares"
}

// ToEntity converts a WalletShareModel to a domain WalletShare entity.
func (m *WalletShareModel) ToEntity() *entity.WalletShare {
	return &entity.WalletShare{
		ID:           m.ID,
		WalletID:     m.WalletID,
		SharedWithID: m.SharedWithID,
		Permission:   entity.SharePermission(m.Permission),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// WalletShareFromEntity creates a WalletShareModel from a domain WalletShare entity.
func WalletShareFromEntity(share *entity.WalletShare) *WalletShareModel {
	return &WalletShareModel{
		ID:           share.ID,
		WalletID:     share.WalletID,
		SharedWithID: share.SharedWithID,
		Permission:   string(share.Permission),
		CreatedAt:    share.CreatedAt,
		UpdatedAt:    share.UpdatedAt,
	}
}
