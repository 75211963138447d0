package dto

import (
	"time"

	"github.com/dompetku/backend/internal/application/usecase/sharing"
)

// ShareWalletRequest represents the request body for granting wallet access.
type ShareWalletRequest struct {
	Username   string `json:"username" binding:"required"`
	Permission string `json:"permission" binding:"required,oneof=view add"`
}

// ShareResponse represents a single wallet grant in API responses.
type ShareResponse struct {
	ID         string    `json:"id"`
	WalletID   string    `json:"wallet_id"`
	Username   string    `json:"username"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShareListResponse represents the grants issued for one wallet.
type ShareListResponse struct {
	Shares []ShareResponse `json:"shares"`
}

// ToShareResponse converts a grant with its recipient to a ShareResponse DTO.
func ToShareResponse(grant *sharing.WalletShareGrant) ShareResponse {
	return ShareResponse{
		ID:         grant.Share.ID.String(),
		WalletID:   grant.Share.WalletID.String(),
		Username:   grant.Username,
		Permission: string(grant.Share.Permission),
		CreatedAt:  grant.Share.CreatedAt,
	}
}

// ToShareListResponse converts grants to a ShareListResponse DTO.
func ToShareListResponse(grants []*sharing.WalletShareGrant) ShareListResponse {
	responses := make([]ShareResponse, 0, len(grants))
	for _, g := range grants {
		responses = append(responses, ToShareResponse(g))
	}
	return ShareListResponse{Shares: responses}
}
