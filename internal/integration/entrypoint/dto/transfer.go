package dto

import (
	"github.com/dompetku/backend/internal/application/usecase/transfer"
)

// TransferRequest represents the request body for a wallet-to-wallet transfer.
type TransferRequest struct {
	FromWalletID string  `json:"from_wallet_id" binding:"required,uuid"`
	ToWalletID   string  `json:"to_wallet_id" binding:"required,uuid"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Fee          float64 `json:"fee,omitempty" binding:"omitempty,gte=0"`
	Description  string  `json:"description,omitempty" binding:"omitempty,max=200"`
	Date         string  `json:"date,omitempty"`
}

// TransferResponse represents the postings created by a transfer.
type TransferResponse struct {
	Postings []TransactionResponse `json:"postings"`
}

// ToTransferResponse converts a transfer result to a TransferResponse DTO.
func ToTransferResponse(output *transfer.TransferFundsOutput) TransferResponse {
	postings := make([]TransactionResponse, 0, len(output.Postings))
	for _, p := range output.Postings {
		postings = append(postings, ToPostingResponse(p))
	}
	return TransferResponse{Postings: postings}
}
