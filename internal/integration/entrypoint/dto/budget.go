package dto

import (
	"github.com/dompetku/backend/internal/domain/entity"
)

// UpsertBudgetRequest represents the request body for setting a budget.
type UpsertBudgetRequest struct {
	CategoryID string  `json:"category_id" binding:"required,uuid"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Year       int     `json:"year" binding:"required,min=1"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	Amount     string `json:"amount"`
}

// BudgetWithSpendingResponse pairs a budget with its realized spending.
type BudgetWithSpendingResponse struct {
	Budget    BudgetResponse   `json:"budget"`
	Category  CategoryResponse `json:"category"`
	Spent     string           `json:"spent"`
	Remaining string           `json:"remaining"`
}

// BudgetListResponse represents the response for listing budgets of a period.
type BudgetListResponse struct {
	Month   int                          `json:"month"`
	Year    int                          `json:"year"`
	Budgets []BudgetWithSpendingResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:         b.ID.String(),
		CategoryID: b.CategoryID.String(),
		Month:      b.Month,
		Year:       b.Year,
		Amount:     b.Amount.String(),
	}
}

// ToBudgetListResponse converts budgets with realization to a BudgetListResponse DTO.
func ToBudgetListResponse(month, year int, budgets []*entity.BudgetWithRealization) BudgetListResponse {
	responses := make([]BudgetWithSpendingResponse, 0, len(budgets))
	for _, b := range budgets {
		responses = append(responses, BudgetWithSpendingResponse{
			Budget:    ToBudgetResponse(b.Budget),
			Category:  ToCategoryResponse(b.Category),
			Spent:     b.Spent.String(),
			Remaining: b.Budget.Amount.Sub(b.Spent).String(),
		})
	}
	return BudgetListResponse{Month: month, Year: year, Budgets: responses}
}
