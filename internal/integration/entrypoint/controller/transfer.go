package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/usecase/transfer"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/entrypoint/dto"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
)

// TransferController handles wallet-to-wallet transfer endpoints.
type TransferController struct {
	transferUseCase *transfer.TransferFundsUseCase
}

// NewTransferController creates a new transfer controller instance.
func NewTransferController(transferUseCase *transfer.TransferFundsUseCase) *TransferController {
	return &TransferController{
		transferUseCase: transferUseCase,
	}
}

// Transfer handles POST /transfers requests.
func (c *TransferController) Transfer(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.TransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransferFields),
		})
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format",
			})
			return
		}
		date = parsed
	}

	input := transfer.TransferFundsInput{
		ActorID:      userID,
		FromWalletID: uuid.MustParse(req.FromWalletID),
		ToWalletID:   uuid.MustParse(req.ToWalletID),
		Amount:       decimal.NewFromFloat(req.Amount),
		Fee:          decimal.NewFromFloat(req.Fee),
		Description:  req.Description,
		Date:         date,
	}

	output, err := c.transferUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransferError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransferResponse(output))
}

// handleTransferError handles transfer errors and returns appropriate HTTP responses.
func (c *TransferController) handleTransferError(ctx *gin.Context, err error) {
	var trfErr *domainerror.TransferError
	if errors.As(err, &trfErr) {
		statusCode := c.getStatusCodeForTransferError(trfErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: trfErr.Message,
			Code:  string(trfErr.Code),
		})
		return
	}

	var walErr *domainerror.WalletError
	if errors.As(err, &walErr) {
		statusCode := http.StatusInternalServerError
		switch walErr.Code {
		case domainerror.ErrCodeWalletNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedWallet:
			statusCode = http.StatusForbidden
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: walErr.Message,
			Code:  string(walErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransferError maps transfer error codes to HTTP status codes.
func (c *TransferController) getStatusCodeForTransferError(code domainerror.TransferErrorCode) int {
	switch code {
	case domainerror.ErrCodeSameWalletTransfer,
		domainerror.ErrCodeInvalidTransferAmount,
		domainerror.ErrCodeInvalidTransferFee,
		domainerror.ErrCodeMissingTransferFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
