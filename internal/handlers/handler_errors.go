package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ndolodev/bureau_change_app/internal/apperrors"
	"github.com/ndolodev/bureau_change_app/internal/core/services"
	"github.com/ndolodev/bureau_change_app/internal/middleware"
)

// respondServiceError translates service errors to HTTP responses. Business
// rejections and lost concurrent races both map to 409, but races carry
// retryable=true since an unchanged retry can succeed.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, services.ErrVoidDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isBusinessRuleError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// isBusinessRuleError reports whether the error is a domain-state rejection.
// The wrapped message carries the authoritative current values, so the body
// forwards err.Error() verbatim.
func isBusinessRuleError(err error) bool {
	return errors.Is(err, services.ErrAlreadySettled) ||
		errors.Is(err, services.ErrTransactionVoided) ||
		errors.Is(err, services.ErrAmountExceedsRemaining) ||
		errors.Is(err, services.ErrTransactionSettled) ||
		errors.Is(err, services.ErrOrderClosed) ||
		errors.Is(err, services.ErrDepositFinalized)
}

// operatorIDOrAbort pulls the authenticated operator from the context,
// writing a 401 when it is missing.
func operatorIDOrAbort(c *gin.Context, logger *slog.Logger) (string, bool) {
	operatorID, ok := middleware.GetOperatorIDFromContext(c)
	if !ok {
		logger.Error("Operator ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return operatorID, true
}
