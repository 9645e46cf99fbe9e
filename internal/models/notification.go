package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app entry shown on the admin dashboard, usually
// tied to a booking event.
type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	BookingID *uuid.UUID `json:"booking_id" db:"booking_id"`
	Message   string     `json:"message" db:"message"`
	Read      bool       `json:"read" db:"read"`
	Dismissed bool       `json:"dismissed" db:"dismissed"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
