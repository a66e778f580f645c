package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/pkg/auth"
	apperrors "github.com/caremate/caremate-api/pkg/errors"
	"github.com/caremate/caremate-api/pkg/httputil"
)

const (
	// ContextEmail holds the authenticated user's email after Authenticate runs.
	ContextEmail = "auth_email"
	// ContextRole holds the authenticated user's role after Authenticate runs.
	ContextRole = "auth_role"
)

// AuthMiddleware validates bearer tokens and enforces role access.
type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate parses the Authorization header and stores the token
// claims on the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtSvc.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role does not match.
// It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != string(role) {
			httputil.RespondWithError(c, apperrors.Forbidden("Access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// EmailFromContext returns the authenticated email set by Authenticate.
func EmailFromContext(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

func abortUnauthorized(c *gin.Context, msg string) {
	httputil.RespondWithError(c, apperrors.Unauthorized(msg))
	c.Abort()
}
