package middleware

import (
	"net/http"
	"strings"

	"project-tracker/internal/auth"
	"project-tracker/internal/models"
	"project-tracker/internal/permissions"
	"project-tracker/internal/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Session keys written at login.
const (
	SessionUserID = "user_id"
	SessionRole   = "role"
)

// RequireAuth resolves the caller from a bearer token, or from the login
// session when no Authorization header is sent.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				response.HTTPError(c, http.StatusUnauthorized, "invalid authorization header")
				return
			}
			id, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				response.HTTPError(c, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			c.Set(identityKey, id)
			c.Next()
			return
		}

		if id := sessionIdentity(c); id != nil {
			c.Set(identityKey, id)
			c.Next()
			return
		}

		response.HTTPError(c, http.StatusUnauthorized, "authentication required")
	}
}

func sessionIdentity(c *gin.Context) *auth.Identity {
	sess := sessions.Default(c)
	uid, ok := sess.Get(SessionUserID).(uint)
	if !ok || uid == 0 {
		return nil
	}
	role, _ := sess.Get(SessionRole).(string)
	return &auth.Identity{UserID: uid, Role: models.Role(role)}
}

// RequireCapability lets the request through only if the caller's role
// has the capability.
func RequireCapability(can permissions.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil {
			response.HTTPError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if !can(id.Role) {
			response.HTTPError(c, http.StatusForbidden, "insufficient permissions")
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity RequireAuth stored, or nil.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}
