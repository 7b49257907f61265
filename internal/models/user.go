package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a back-office role
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User represents a back-office user
type User struct {
	BaseModel

	Email     string `json:"email" db:"email"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`

	PasswordHash string `json:"-" db:"password_hash"`

	Role     UserRole `json:"role" db:"role"`
	IsActive bool     `json:"is_active" db:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`

	// VenueID scopes managers and staff to a single location; admins
	// have no venue scope.
	VenueID *uuid.UUID `json:"venue_id,omitempty" db:"venue_id"`
}
