package dto

import (
	"time"

	"github.com/dompetku/backend/internal/domain/entity"
)

// CreateWalletRequest represents the request body for wallet creation.
type CreateWalletRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Type           string  `json:"type" binding:"required,oneof=cash digital"`
	OpeningBalance float64 `json:"opening_balance,omitempty" binding:"omitempty,gte=0"`
}

// UpdateWalletRequest represents the request body for wallet update.
type UpdateWalletRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" binding:"omitempty,oneof=cash digital"`
}

// WalletResponse represents a single wallet in API responses.
type WalletResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// SharedWalletResponse represents a wallet someone else shared with the caller.
type SharedWalletResponse struct {
	Wallet     WalletResponse `json:"wallet"`
	Owner      string         `json:"owner"`
	Permission string         `json:"permission"`
}

// WalletListResponse represents the response for listing wallets.
type WalletListResponse struct {
	Owned  []WalletResponse       `json:"owned"`
	Shared []SharedWalletResponse `json:"shared"`
}

// ToWalletResponse converts a domain Wallet entity to a WalletResponse DTO.
func ToWalletResponse(w *entity.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		Type:      string(w.Type),
		Balance:   w.Balance.String(),
		CreatedAt: w.CreatedAt,
	}
}

// ToSharedWalletResponse converts a WalletWithShare to a SharedWalletResponse DTO.
func ToSharedWalletResponse(s *entity.WalletWithShare) SharedWalletResponse {
	return SharedWalletResponse{
		Wallet:     ToWalletResponse(s.Wallet),
		Owner:      s.OwnerName,
		Permission: string(s.Share.Permission),
	}
}

// ToWalletListResponse converts owned and shared wallets to a WalletListResponse DTO.
func ToWalletListResponse(owned []*entity.Wallet, shared []*entity.WalletWithShare) WalletListResponse {
	response := WalletListResponse{
		Owned:  make([]WalletResponse, 0, len(owned)),
		Shared: make([]SharedWalletResponse, 0, len(shared)),
	}
	for _, w := range owned {
		response.Owned = append(response.Owned, ToWalletResponse(w))
	}
	for _, s := range shared {
		response.Shared = append(response.Shared, ToSharedWalletResponse(s))
	}
	return response
}
