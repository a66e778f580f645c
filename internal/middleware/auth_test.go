package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremate/caremate-api/internal/model"
	"github.com/caremate/caremate-api/pkg/auth"
)

func authRouter(t *testing.T, jwtSvc auth.JWTService, role model.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(jwtSvc)
	r := gin.New()
	r.GET("/whoami", m.Authenticate(), m.RequireRole(role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": EmailFromContext(c)})
	})
	return r
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := authRouter(t, jwtSvc, model.RoleNurse)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, err := jwtSvc.GenerateToken("nurse@example.com", model.RoleNurse)
		require.NoError(t, err)

		w := request(r, "Bearer "+token)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "nurse@example.com")
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := request(r, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header is required")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		w := request(r, "Token abcdef")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid authorization header format")
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret", time.Hour).
			GenerateToken("nurse@example.com", model.RoleNurse)
		require.NoError(t, err)

		w := request(r, "Bearer "+forged)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired, err := auth.NewJWTService("test-secret", -time.Minute).
			GenerateToken("nurse@example.com", model.RoleNurse)
		require.NoError(t, err)

		w := request(r, "Bearer "+expired)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})
}

func TestRequireRole(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := authRouter(t, jwtSvc, model.RoleAdmin)

	token, err := jwtSvc.GenerateToken("nurse@example.com", model.RoleNurse)
	require.NoError(t, err)

	w := request(r, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied")
}
