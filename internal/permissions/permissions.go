// Package permissions is the single authorization gate for the API. Handlers
// and services ask it questions; nothing else compares roles directly.
package permissions

import "ratings/internal/models"

// CanManageCatalog reports whether the requester may create, update or delete
// categories, genres and titles. Reads of the catalog are open to everyone and
// never reach this check.
func CanManageCatalog(requester *models.User) bool {
	return requester != nil && requester.IsAdmin()
}

// CanManageUsers reports whether the requester may use the admin user
// collection (list, create, update, delete other accounts).
func CanManageUsers(requester *models.User) bool {
	return requester != nil && requester.IsAdmin()
}

// CanModifyContent reports whether the requester may edit or delete a review
// or comment authored by authorID: the author themselves, a moderator, or an
// admin.
func CanModifyContent(requester *models.User, authorID string) bool {
	if requester == nil {
		return false
	}
	return requester.ID == authorID || requester.IsModerator()
}

// CanChangeRole reports whether the requester may change a user's role. The
// self-profile path never passes this check for ordinary users, so role
// escalation through /users/me is impossible.
func CanChangeRole(requester *models.User) bool {
	return requester != nil && requester.IsAdmin()
}
