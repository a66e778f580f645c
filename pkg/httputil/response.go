package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends an error response, mapping error codes to
// transport status at the boundary.
func RespondWithError(c *gin.Context, err error) {
	var fields map[string]string
	message := "Internal server error"

	if appErr, ok := err.(*errors.AppError); ok {
		message = appErr.Message
		fields = appErr.Fields
	}

	c.JSON(StatusFor(err), Response{
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  fields,
	})
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrValidation:
		return http.StatusBadRequest
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrInvalidState:
		return http.StatusUnprocessableEntity
	case errors.ErrConflict:
		return http.StatusConflict
	case errors.ErrPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
