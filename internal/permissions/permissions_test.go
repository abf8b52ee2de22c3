package permissions

import (
	"testing"

	"project-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

var allRoles = []models.Role{
	models.RoleAdmin,
	models.RoleManager,
	models.RoleTeamMember,
	models.RoleViewer,
	"",
	"owner",
	"ADMIN",
}

func TestCapabilityLaws(t *testing.T) {
	in := func(r models.Role, set ...models.Role) bool {
		for _, s := range set {
			if r == s {
				return true
			}
		}
		return false
	}

	for _, r := range allRoles {
		t.Run(string(r), func(t *testing.T) {
			assert.Equal(t, in(r, models.RoleAdmin, models.RoleManager), CanApprove(r))
			assert.Equal(t, in(r, models.RoleAdmin, models.RoleManager, models.RoleTeamMember), CanEdit(r))
			assert.Equal(t, in(r, models.RoleAdmin, models.RoleManager), CanDelete(r))
			assert.Equal(t, in(r, models.RoleAdmin, models.RoleManager, models.RoleTeamMember, models.RoleViewer), CanView(r))
			assert.Equal(t, r == models.RoleAdmin, IsAdmin(r))
		})
	}
}

func TestUnknownRoleIsDeniedEverything(t *testing.T) {
	for _, c := range []Capability{CanApprove, CanEdit, CanDelete, CanView, IsAdmin} {
		assert.False(t, c("superuser"))
	}
}
