package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"github.com/rishtahub/rishta_backend/pkg/logger"
)

// respondError maps an AppError code to its HTTP status. Internal failures
// are logged with detail but leave the response body generic.
func respondError(c *gin.Context, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		logger.Error("Unexpected error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":  errors.ErrCodeInternalError,
			"error": "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.ErrCodeNotAuthenticated:
		status = http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnauthorized, errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case errors.ErrCodePolicyViolation:
		status = http.StatusForbidden
	case errors.ErrCodeInvalidState, errors.ErrCodeValidation, errors.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeAlreadyExists:
		status = http.StatusConflict
	case errors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	default:
		logger.Error("Internal error", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{
		"code":  appErr.Code,
		"error": appErr.Message,
	})
}
