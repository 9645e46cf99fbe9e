package models

import (
	"time"

	"github.com/google/uuid"
)

// CarOwner is a third party whose vehicle the business operates on
// consignment. GovernmentIDURL points at the uploaded identity document
// in object storage.
type CarOwner struct {
	ID              uuid.UUID `json:"id" db:"id"`
	TenantID        uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FullName        string    `json:"full_name" db:"full_name"`
	Email           *string   `json:"email" db:"email"`
	ContactNumber   *string   `json:"contact_number" db:"contact_number"`
	Address         *string   `json:"address" db:"address"`
	GovernmentIDURL *string   `json:"government_id_url" db:"government_id_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
