package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the business account. Its id doubles as the effective owner
// id carried by every other record; the account that signs up is its own
// tenant.
type Tenant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
