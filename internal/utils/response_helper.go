package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// SendSuccessResponse sends a successful JSON response
func SendSuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendUnauthorizedError sends a 401 Unauthorized error
func SendUnauthorizedError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, message, "")
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusNotFound, models.ErrCodeNotFound, message, "")
}

// SendValidationError sends a validation error response
func SendValidationError(c *gin.Context, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", details)
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// ErrorCodeFor maps a service error to its wire-level error code
func ErrorCodeFor(err error) string {
	switch {
	case apperrors.IsValidation(err):
		return models.ErrCodeValidationError
	case apperrors.IsNotFound(err):
		return models.ErrCodeNotFound
	case apperrors.IsInvalidTransition(err):
		return models.ErrCodeInvalidTransition
	case apperrors.IsAlreadyInitialized(err):
		return models.ErrCodeAlreadyInitialized
	case apperrors.IsNotSentYet(err):
		return models.ErrCodeNotSentYet
	default:
		return models.ErrCodeInternalError
	}
}

// SendAppError translates a service error into the matching HTTP response.
// Unrecognized errors come out as a 500 with a generic message so internal
// details never leak to the client.
func SendAppError(c *gin.Context, err error) {
	code := ErrorCodeFor(err)
	status := models.HTTPStatusForErrorCode(code)
	message := err.Error()
	if code == models.ErrCodeInternalError {
		message = "Internal server error"
	}
	SendErrorResponse(c, status, code, message, "")
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
