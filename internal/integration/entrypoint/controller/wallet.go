package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompetku/backend/internal/application/usecase/wallet"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/entrypoint/dto"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
)

// WalletController handles wallet endpoints.
type WalletController struct {
	listUseCase   *wallet.ListWalletsUseCase
	createUseCase *wallet.CreateWalletUseCase
	updateUseCase *wallet.UpdateWalletUseCase
	deleteUseCase *wallet.DeleteWalletUseCase
}

// NewWalletController creates a new wallet controller instance.
func NewWalletController(
	listUseCase *wallet.ListWalletsUseCase,
	createUseCase *wallet.CreateWalletUseCase,
	updateUseCase *wallet.UpdateWalletUseCase,
	deleteUseCase *wallet.DeleteWalletUseCase,
) *WalletController {
	return &WalletController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /wallets requests.
func (c *WalletController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), wallet.ListWalletsInput{
		ActorID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve wallets",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletListResponse(output.Owned, output.Shared))
}

// Create handles POST /wallets requests.
func (c *WalletController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingWalletFields),
		})
		return
	}

	input := wallet.CreateWalletInput{
		ActorID:        userID,
		Name:           req.Name,
		Type:           entity.WalletType(req.Type),
		OpeningBalance: decimal.NewFromFloat(req.OpeningBalance),
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToWalletResponse(output.Wallet))
}

// Update handles PATCH /wallets/:id requests.
func (c *WalletController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid wallet ID format",
		})
		return
	}

	var req dto.UpdateWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := wallet.UpdateWalletInput{
		ActorID:  userID,
		WalletID: walletID,
		Name:     req.Name,
	}
	if req.Type != nil {
		walletType := entity.WalletType(*req.Type)
		input.Type = &walletType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToWalletResponse(output.Wallet))
}

// Delete handles DELETE /wallets/:id requests.
func (c *WalletController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	walletID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid wallet ID format",
		})
		return
	}

	input := wallet.DeleteWalletInput{
		ActorID:  userID,
		WalletID: walletID,
	}

	_, err = c.deleteUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleWalletError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleWalletError handles wallet errors and returns appropriate HTTP responses.
func (c *WalletController) handleWalletError(ctx *gin.Context, err error) {
	var walErr *domainerror.WalletError
	if errors.As(err, &walErr) {
		statusCode := c.getStatusCodeForWalletError(walErr.Code)
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

// getStatusCodeForWalletError maps wallet error codes to HTTP status codes.
func (c *WalletController) getStatusCodeForWalletError(code domainerror.WalletErrorCode) int {
	switch code {
	case domainerror.ErrCodeWalletNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedWallet:
		return http.StatusForbidden
	case domainerror.ErrCodeWalletHasTransactions:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidWalletType,
		domainerror.ErrCodeMissingWalletFields,
		domainerror.ErrCodeNegativeOpeningBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
