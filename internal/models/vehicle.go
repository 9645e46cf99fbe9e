package models

import (
	"time"

	"github.com/google/uuid"
)

type Vehicle struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Make        string    `json:"make" db:"make"`
	Model       string    `json:"model" db:"model"`
	Year        int       `json:"year" db:"year"`
	Description *string   `json:"description" db:"description"`
	DailyRate   float64   `json:"daily_rate" db:"daily_rate"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleVariant is a color/configuration of a vehicle model with its own
// stock counters. Invariant: 0 <= AvailableQuantity <= TotalQuantity.
type VehicleVariant struct {
	ID                uuid.UUID `json:"id" db:"id"`
	TenantID          uuid.UUID `json:"tenant_id" db:"tenant_id"`
	VehicleID         uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Color             string    `json:"color" db:"color"`
	TotalQuantity     int       `json:"total_quantity" db:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity" db:"available_quantity"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
