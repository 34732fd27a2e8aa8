package models

import (
	"time"
)

// User represents an account in the system
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	ContentCount int       `json:"content_count,omitempty" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Roles
const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleUser:   true,
	RoleEditor: true,
	RoleAdmin:  true,
}

// CanEdit reports whether the role grants content editing rights
func CanEdit(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// PublicUser is the representation returned by auth endpoints
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public strips credential fields from a user
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
