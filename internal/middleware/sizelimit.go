package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/httputil"
)

// BodySizeLimit caps request body size. Uploads larger than the limit
// fail while reading the form, surfacing as a 413.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			httputil.RespondWithError(c, apperrors.PayloadTooLarge("Request body too large"))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
