package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// AppUser is a staff account inside a tenant. Role and OwnerUID are
// immutable after creation; for an owner, OwnerUID equals the user's own
// id.
type AppUser struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerUID      uuid.UUID `json:"owner_uid" db:"owner_uid"`
	FullName      string    `json:"full_name" db:"full_name"`
	Email         string    `json:"email" db:"email"`
	ContactNumber *string   `json:"contact_number" db:"contact_number"`
	Role          string    `json:"role" db:"role"`
	Status        string    `json:"status" db:"status"`
	PasswordHash  string    `json:"-" db:"password_hash"` // Never serialize in JSON
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the three app roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin || role == RoleDriver
}
