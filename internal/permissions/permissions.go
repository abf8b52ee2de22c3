// Package permissions maps roles to the capabilities they grant. Every
// function is total over models.Role and answers false for unknown roles.
package permissions

import "project-tracker/internal/models"

// Capability is a yes/no question asked about a role.
type Capability func(models.Role) bool

func CanApprove(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

func CanEdit(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleManager, models.RoleTeamMember:
		return true
	}
	return false
}

func CanDelete(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// CanView holds for every known role.
func CanView(role models.Role) bool {
	return role.Valid()
}

func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}
