package handlers

import (
	"errors"
	"net/http"
	"strings"

	"project-tracker/internal/apperr"
	"project-tracker/internal/auth"
	"project-tracker/internal/logutils"
	"project-tracker/internal/middleware"
	"project-tracker/internal/models"
	"project-tracker/internal/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// Register creates a user. Admins cannot be created this way; the admin
// account is seeded from configuration.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name, a valid email and a password of at least 8 characters are required")
		return
	}

	role := models.RoleTeamMember
	if req.Role != "" {
		role = models.Role(req.Role)
	}
	switch role {
	case models.RoleManager, models.RoleTeamMember, models.RoleViewer:
	default:
		response.BadRequest(c, "invalid role")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := h.emailTaken(c, email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if taken {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		response.Fail(c, err)
		return
	}
	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := h.DB.WithContext(c).Create(&user).Error; err != nil {
		// A concurrent registration may have claimed the address after the check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.BadRequest(c, "email already registered")
			return
		}
		if taken, terr := h.emailTaken(c, email); terr == nil && taken {
			response.BadRequest(c, "email already registered")
			return
		}
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityUser, user.ID, user.ID, models.ActionCreate, map[string]any{
		"email": user.Email,
		"role":  string(user.Role),
	})
	response.Created(c, user)
}

func (h *Handler) emailTaken(c *gin.Context, email string) (bool, error) {
	var count int64
	err := h.DB.WithContext(c).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login verifies credentials, returns a bearer token and also opens a
// cookie session for browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	var user models.User
	err := h.DB.WithContext(c).Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Fail(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		response.HTTPError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		response.Fail(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionRole, string(user.Role))
	saveSession(sess, user.ID)

	response.Success(c, loginResponse{Token: token, User: user})
}

func (h *Handler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	saveSession(sess, 0)
	response.Success(c, gin.H{"message": "logged out"})
}

// Me returns the user behind the current credential.
func (h *Handler) Me(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		response.Fail(c, apperr.ErrUnauthenticated)
		return
	}

	var user models.User
	if err := h.DB.WithContext(c).First(&user, id.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.HTTPError(c, http.StatusNotFound, "user not found")
			return
		}
		response.Fail(c, err)
		return
	}
	response.Success(c, user)
}

// ListUsers is available to admins only.
func (h *Handler) ListUsers(c *gin.Context) {
	users := []models.User{}
	if err := h.DB.WithContext(c).Order("name asc").Find(&users).Error; err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, users)
}

// saveSession persists the cookie session. A failure only loses the cookie
// fallback, so it is logged and the request carries on.
func saveSession(sess sessions.Session, userID uint) {
	if err := sess.Save(); err != nil {
		logutils.Log.WithError(err).WithField("user_id", userID).Error("failed to save session")
	}
}
