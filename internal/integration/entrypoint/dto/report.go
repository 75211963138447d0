package dto

import (
	"github.com/dompetku/backend/internal/application/usecase/report"
)

// CategoryTotalResponse represents the aggregated amount of one category.
type CategoryTotalResponse struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Total        string `json:"total"`
}

// SummaryResponse represents the dashboard summary for one calendar month.
type SummaryResponse struct {
	Month             int                     `json:"month"`
	Year              int                     `json:"year"`
	TotalBalance      string                  `json:"total_balance"`
	PeriodIncome      string                  `json:"period_income"`
	PeriodExpense     string                  `json:"period_expense"`
	ExpenseByCategory []CategoryTotalResponse `json:"expense_by_category"`
}

// ImportRowErrorResponse describes one skipped CSV row.
type ImportRowErrorResponse struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResponse represents the outcome of a CSV import.
type ImportResponse struct {
	Imported    int                      `json:"imported"`
	Errors      []ImportRowErrorResponse `json:"errors"`
	TotalErrors int                      `json:"total_errors"`
}

// ToSummaryResponse converts a summary result to a SummaryResponse DTO.
func ToSummaryResponse(month, year int, output *report.SummaryOutput) SummaryResponse {
	totals := make([]CategoryTotalResponse, 0, len(output.ExpenseByCategory))
	for _, t := range output.ExpenseByCategory {
		totals = append(totals, CategoryTotalResponse{
			CategoryID:   t.CategoryID.String(),
			CategoryName: t.CategoryName,
			Total:        t.Total.String(),
		})
	}
	return SummaryResponse{
		Month:             month,
		Year:              year,
		TotalBalance:      output.TotalBalance.String(),
		PeriodIncome:      output.PeriodIncome.String(),
		PeriodExpense:     output.PeriodExpense.String(),
		ExpenseByCategory: totals,
	}
}

// ToImportResponse converts an import result to an ImportResponse DTO.
func ToImportResponse(output *report.ImportCSVOutput) ImportResponse {
	rowErrors := make([]ImportRowErrorResponse, 0, len(output.RowErrors))
	for _, e := range output.RowErrors {
		rowErrors = append(rowErrors, ImportRowErrorResponse{Row: e.Row, Reason: e.Reason})
	}
	return ImportResponse{
		Imported:    output.Imported,
		Errors:      rowErrors,
		TotalErrors: output.TotalErrors,
	}
}
