package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ratings/internal/models"
	"ratings/internal/permissions"
)

func user(id string, role models.Role) *models.User {
	return &models.User{ID: id, Username: "u-" + id, Role: role}
}

func TestCanManageCatalog(t *testing.T) {
	tests := []struct {
		name      string
		requester *models.User
		want      bool
	}{
		{"anonymous", nil, false},
		{"user", user("1", models.RoleUser), false},
		{"moderator", user("2", models.RoleModerator), false},
		{"admin", user("3", models.RoleAdmin), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.CanManageCatalog(tt.requester))
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	assert.False(t, permissions.CanManageUsers(nil))
	assert.False(t, permissions.CanManageUsers(user("1", models.RoleUser)))
	assert.False(t, permissions.CanManageUsers(user("2", models.RoleModerator)))
	assert.True(t, permissions.CanManageUsers(user("3", models.RoleAdmin)))
}

func TestCanModifyContent(t *testing.T) {
	const authorID = "author-1"

	tests := []struct {
		name      string
		requester *models.User
		want      bool
	}{
		{"anonymous", nil, false},
		{"the author", user(authorID, models.RoleUser), true},
		{"another user", user("other", models.RoleUser), false},
		{"moderator", user("mod", models.RoleModerator), true},
		{"admin", user("adm", models.RoleAdmin), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permissions.CanModifyContent(tt.requester, authorID))
		})
	}
}

func TestCanChangeRole(t *testing.T) {
	assert.False(t, permissions.CanChangeRole(nil))
	assert.False(t, permissions.CanChangeRole(user("1", models.RoleUser)))
	assert.False(t, permissions.CanChangeRole(user("2", models.RoleModerator)))
	assert.True(t, permissions.CanChangeRole(user("3", models.RoleAdmin)))
}
