package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/caremate/caremate-api/internal/middleware"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
)

// BindingError converts a request binding failure into a validation
// error carrying per-field messages where available.
func BindingError(err error) *apperrors.AppError {
	if fields := middleware.ValidationFields(err); fields != nil {
		return apperrors.Validation(fields)
	}
	return apperrors.Validation(map[string]string{"request": "Malformed request"})
}

// PathID parses a UUID path parameter.
func PathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperrors.Validation(map[string]string{name: "must be a valid UUID"})
	}
	return id, nil
}
