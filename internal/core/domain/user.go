package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Bootstrap administrator created on first startup. The password is a
// known weak default meant to be rotated after deployment, not a secret.
const (
	BootstrapAdminEmail    = "admin@familydash.com"
	BootstrapAdminPassword = "admin123"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
