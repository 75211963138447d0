package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dompetku/backend/internal/application/usecase/report"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/entrypoint/dto"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
)

// maxImportFileSize caps uploaded CSV files at 5 MiB.
const maxImportFileSize = 5 << 20

// ReportController handles summary, export and import endpoints.
type ReportController struct {
	summaryUseCase *report.SummaryUseCase
	exportUseCase  *report.ExportCSVUseCase
	importUseCase  *report.ImportCSVUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	summaryUseCase *report.SummaryUseCase,
	exportUseCase *report.ExportCSVUseCase,
	importUseCase *report.ImportCSVUseCase,
) *ReportController {
	return &ReportController{
		summaryUseCase: summaryUseCase,
		exportUseCase:  exportUseCase,
		importUseCase:  importUseCase,
	}
}

// Summary handles GET /reports/summary requests.
func (c *ReportController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	now := time.Now().UTC()
	month := int(now.Month())
	year := now.Year()
	if monthStr := ctx.Query("month"); monthStr != "" {
		parsed, err := strconv.Atoi(monthStr)
		if err != nil || parsed < 1 || parsed > 12 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid month",
			})
			return
		}
		month = parsed
	}
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year",
			})
			return
		}
		year = parsed
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.SummaryInput{
		ActorID: userID,
		Month:   month,
		Year:    year,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(month, year, output))
}

// Export handles GET /reports/export requests. The response body is the CSV
// document itself.
func (c *ReportController) Export(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), report.ExportCSVInput{
		ActorID: userID,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv", output.Content)
}

// Import handles POST /reports/import requests. The CSV document arrives as
// the multipart form file named "file".
func (c *ReportController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "CSV file is required",
			Code:  string(domainerror.ErrCodeInvalidCSV),
		})
		return
	}
	if fileHeader.Size > maxImportFileSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: "CSV file is too large",
			Code:  string(domainerror.ErrCodeInvalidCSV),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read uploaded file",
			Code:  string(domainerror.ErrCodeInvalidCSV),
		})
		return
	}
	defer file.Close()

	output, err := c.importUseCase.Execute(ctx.Request.Context(), report.ImportCSVInput{
		ActorID: userID,
		Reader:  file,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		statusCode := http.StatusInternalServerError
		if rptErr.Code == domainerror.ErrCodeInvalidCSV {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
