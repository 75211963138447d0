package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dompetku/backend/internal/application/usecase/sharing"
	"github.com/dompetku/backend/internal/domain/entity"
	domainerror "github.com/dompetku/backend/internal/domain/error"
	"github.com/dompetku/backend/internal/integration/entrypoint/dto"
	"github.com/dompetku/backend/internal/integration/entrypoint/middleware"
)

// SharingController handles wallet sharing endpoints.
type SharingController struct {
	shareUseCase        *sharing.ShareWalletUseCase
	revokeUseCase       *sharing.RevokeShareUseCase
	listSharesUseCase   *sharing.ListWalletSharesUseCase
	sharedWithMeUseCase *sharing.ListSharedWithMeUseCase
}

// NewSharingController creates a new sharing controller instance.
func NewSharingController(
	shareUseCase *sharing.ShareWalletUseCase,
	revokeUseCase *sharing.RevokeShareUseCase,
	listSharesUseCase *sharing.ListWalletSharesUseCase,
	sharedWithMeUseCase *sharing.ListSharedWithMeUseCase,
) *SharingController {
	return &SharingController{
		shareUseCase:        shareUseCase,
		revokeUseCase:       revokeUseCase,
		listSharesUseCase:   listSharesUseCase,
		sharedWithMeUseCase: sharedWithMeUseCase,
	}
}

// Share handles POST /wallets/:id/shares requests.
func (c *SharingController) Share(ctx *gin.Context) {
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

	var req dto.ShareWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeInvalidSharePermission),
		})
		return
	}

	input := sharing.ShareWalletInput{
		ActorID:    userID,
		WalletID:   walletID,
		Username:   req.Username,
		Permission: entity.SharePermission(req.Permission),
	}

	output, err := c.shareUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSharingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToShareResponse(&sharing.WalletShareGrant{
		Share:    output.Share,
		Username: req.Username,
	}))
}

// ListShares handles GET /wallets/:id/shares requests.
func (c *SharingController) ListShares(ctx *gin.Context) {
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

	output, err := c.listSharesUseCase.Execute(ctx.Request.Context(), sharing.ListWalletSharesInput{
		ActorID:  userID,
		WalletID: walletID,
	})
	if err != nil {
		c.handleSharingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShareListResponse(output.Grants))
}

// Revoke handles DELETE /shares/:id requests.
func (c *SharingController) Revoke(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	shareID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid share ID format",
		})
		return
	}

	err = c.revokeUseCase.Execute(ctx.Request.Context(), sharing.RevokeShareInput{
		ActorID: userID,
		ShareID: shareID,
	})
	if err != nil {
		c.handleSharingError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SharedWithMe handles GET /shared-wallets requests.
func (c *SharingController) SharedWithMe(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.sharedWithMeUseCase.Execute(ctx.Request.Context(), sharing.ListSharedWithMeInput{
		ActorID: userID,
	})
	if err != nil {
		c.handleSharingError(ctx, err)
		return
	}

	responses := make([]dto.SharedWalletResponse, 0, len(output.Wallets))
	for _, w := range output.Wallets {
		responses = append(responses, dto.ToSharedWalletResponse(w))
	}
	ctx.JSON(http.StatusOK, gin.H{"wallets": responses})
}

// handleSharingError handles sharing errors and returns appropriate HTTP responses.
func (c *SharingController) handleSharingError(ctx *gin.Context, err error) {
	var shrErr *domainerror.SharingError
	if errors.As(err, &shrErr) {
		statusCode := c.getStatusCodeForSharingError(shrErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: shrErr.Message,
			Code:  string(shrErr.Code),
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

// getStatusCodeForSharingError maps sharing error codes to HTTP status codes.
func (c *SharingController) getStatusCodeForSharingError(code domainerror.SharingErrorCode) int {
	switch code {
	case domainerror.ErrCodeShareNotFound,
		domainerror.ErrCodeRecipientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedToShare:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidSharePermission:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
