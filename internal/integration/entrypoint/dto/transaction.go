package dto

import (
	"time"

	"github.com/dompetku/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	WalletID    string  `json:"wallet_id" binding:"required,uuid"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=200"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	WalletID    *string  `json:"wallet_id,omitempty" binding:"omitempty,uuid"`
	CategoryID  *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Date        *string  `json:"date,omitempty"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=200"`
	Amount      *float64 `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Type        *string  `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
}

// TransactionCategoryResponse represents category information nested in a
// transaction response.
type TransactionCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TransactionWalletResponse represents wallet information nested in a
// transaction response.
type TransactionWalletResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string                       `json:"id"`
	WalletID    string                       `json:"wallet_id"`
	CategoryID  string                       `json:"category_id"`
	Date        string                       `json:"date"`
	Description string                       `json:"description"`
	Amount      string                       `json:"amount"`
	Type        string                       `json:"type"`
	Category    *TransactionCategoryResponse `json:"category,omitempty"`
	Wallet      *TransactionWalletResponse   `json:"wallet,omitempty"`
	CreatedAt   time.Time                    `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToPostingResponse converts a bare Transaction entity to a TransactionResponse DTO.
func ToPostingResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		WalletID:    t.WalletID.String(),
		CategoryID:  t.CategoryID.String(),
		Date:        t.Date.Format("2006-01-02 15:04:05"),
		Description: t.Description,
		Amount:      t.Amount.String(),
		Type:        string(t.Type),
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionResponse converts a TransactionWithRefs to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.TransactionWithRefs) TransactionResponse {
	response := ToPostingResponse(t.Transaction)
	if t.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:   t.Category.ID.String(),
			Name: t.Category.Name,
			Type: string(t.Category.Type),
		}
	}
	if t.Wallet != nil {
		response.Wallet = &TransactionWalletResponse{
			ID:   t.Wallet.ID.String(),
			Name: t.Wallet.Name,
			Type: string(t.Wallet.Type),
		}
	}
	return response
}

// ToTransactionListResponse converts TransactionWithRefs values to a
// TransactionListResponse DTO.
func ToTransactionListResponse(transactions []*entity.TransactionWithRefs) TransactionListResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, ToTransactionResponse(t))
	}
	return TransactionListResponse{Transactions: responses}
}
