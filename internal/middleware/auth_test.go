package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-tracker/internal/auth"
	"project-tracker/internal/models"
	"project-tracker/internal/permissions"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.Use(RequestLogger())
	r.GET("/approve", RequireAuth(tokens), RequireCapability(permissions.CanApprove), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentIdentity(c))
	})
	return r
}

func TestRequireAuthAndCapability(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	r := testRouter(tokens)

	manager, err := tokens.Issue(&models.User{Model: gorm.Model{ID: 3}, Role: models.RoleManager})
	require.NoError(t, err)
	viewer, err := tokens.Issue(&models.User{Model: gorm.Model{ID: 4}, Role: models.RoleViewer})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no credential", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + manager, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"viewer", "Bearer " + viewer, http.StatusForbidden},
		{"manager", "Bearer " + manager, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/approve", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := testRouter(auth.NewTokenManager("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/approve", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
