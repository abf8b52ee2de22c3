package auth

import "project-tracker/internal/models"

// Identity is a verified caller: the user a credential resolved to and the
// role the credential carries.
type Identity struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
}
