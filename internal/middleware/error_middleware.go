package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/greeklink/greeklink/internal/app/models/dto"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		handleCustomError(c, customErr)
		return
	}

	var storeErr *apperrors.StoreError
	if errors.As(err, &storeErr) {
		logger.Error().Err(err).Str("code", storeErr.Code).Msg("Store query failed")
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDatabaseError, storeErr.Message),
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrAlumnusNotFound),
		errors.Is(err, apperrors.ErrChapterNotFound),
		errors.Is(err, apperrors.ErrConnectionNotFound),
		errors.Is(err, apperrors.ErrDocumentNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound),
		errors.Is(err, apperrors.ErrConversationNotFound),
		errors.Is(err, apperrors.ErrInvitationNotFound):
		c.JSON(404, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is disabled"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})
	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found"),
		})
	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})
	case errors.Is(err, apperrors.ErrChapterAlreadyExists),
		errors.Is(err, apperrors.ErrConnectionExists),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()),
		})
	case errors.Is(err, apperrors.ErrChapterHasRelations):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, err.Error()),
		})
	case errors.Is(err, apperrors.ErrSelfConnection), errors.Is(err, apperrors.ErrNotConnected):
		c.JSON(400, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()),
		})
	case errors.Is(err, apperrors.ErrInvitationExpired),
		errors.Is(err, apperrors.ErrInvitationRevoked),
		errors.Is(err, apperrors.ErrInvitationUsed):
		c.JSON(410, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvitationInvalid, err.Error()),
		})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

func handleCustomError(c *gin.Context, customErr *apperrors.CustomError) {
	status := 500
	code := dto.ErrorCodeInternalServer

	switch {
	case errors.Is(customErr.Err, apperrors.ErrResourceNotFound):
		status, code = 404, dto.ErrorCodeResourceNotFound
	case errors.Is(customErr.Err, apperrors.ErrConflict):
		status, code = 409, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(customErr.Err, apperrors.ErrPermissionDenied):
		status, code = 403, dto.ErrorCodeForbidden
	case errors.Is(customErr.Err, apperrors.ErrBadRequest):
		status, code = 400, dto.ErrorCodeValidationFailed
	}

	detail := dto.NewErrorDetail(code, customErr.Message)
	if customErr.Details != nil {
		detail = detail.WithDetails(customErr.Details)
	}
	c.JSON(status, dto.APIResponse{Error: detail})
}
