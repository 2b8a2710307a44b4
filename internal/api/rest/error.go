package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/junior13sam/DynamicGens/internal/api/shared/errors"
	"github.com/junior13sam/DynamicGens/internal/domain"
	"github.com/junior13sam/DynamicGens/internal/logger"
	"github.com/junior13sam/DynamicGens/internal/store"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code apierrors.ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, apierrors.ErrCodeBadRequest, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, apierrors.ErrCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, apierrors.ErrCodeInternalError, message)
}

// domainStatus maps a lifecycle error to its HTTP status and error code.
var domainStatus = []struct {
	err    error
	status int
	code   apierrors.ErrorCode
}{
	{domain.ErrTokenNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound},
	{domain.ErrUnauthorized, http.StatusForbidden, apierrors.ErrCodeForbidden},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired, apierrors.ErrCodeInsufficientFunds},
	{domain.ErrCapacityExceeded, http.StatusConflict, apierrors.ErrCodeCapacityExceeded},
	{domain.ErrFeatureDisabled, http.StatusConflict, apierrors.ErrCodeFeatureDisabled},
	{domain.ErrCooldownActive, http.StatusConflict, apierrors.ErrCodeCooldownActive},
	{domain.ErrGenerationCapReached, http.StatusConflict, apierrors.ErrCodeGenerationCapReached},
	{domain.ErrInvalidTraits, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidTraits},
	{domain.ErrInvalidOperation, http.StatusBadRequest, apierrors.ErrCodeInvalidOperation},
	{store.ErrStaleState, http.StatusConflict, apierrors.ErrCodeInvalidOperation},
}

// respondDomainError maps lifecycle precondition failures to client errors and
// everything else to a logged 500.
func respondDomainError(c *gin.Context, err error, message string) {
	for _, m := range domainStatus {
		if errors.Is(err, m.err) {
			respondWithError(c, m.status, m.code, message, m.err.Error())
			return
		}
	}
	respondInternalError(c, err, message)
}
