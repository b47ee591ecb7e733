package models

import (
	"fmt"
	"time"
)

// Role is the access level assigned to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a role string coming from a request body or a CSV import.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// User represents an account. Accounts are passwordless: signup stores a hashed
// single-use confirmation code, and exchanging that code yields a JWT.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(150);not null" validate:"required,max=150,username"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(254);not null" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
	Bio       string `json:"bio" gorm:"type:varchar(200)" validate:"omitempty,max=200"`
	Role      Role   `json:"role" gorm:"type:varchar(20);default:user;not null"`

	// Confirmation-code state; never serialized.
	ConfirmationCodeHash string     `json:"-" gorm:"type:varchar(255)"`
	CodeIssuedAt         *time.Time `json:"-"`
	Confirmed            bool       `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsModerator reports whether the user may edit or delete content they do not own.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// IsAdmin reports whether the user may manage the catalog and other accounts.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
