package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusOngoing   = "ongoing"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusDeclined  = "declined"
)

// Booking is a rental reservation. Lifecycle: created pending by the
// customer flow; an admin confirms, declines or cancels it; the assigned
// driver starts the trip (ongoing) and ends it (completed), at which
// point the settlement fields are filled in.
type Booking struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	TenantID         uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	VehicleID        uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	VariantID        uuid.UUID  `json:"vehicle_variant_id" db:"vehicle_variant_id"`
	CustomerName     string     `json:"customer_name" db:"customer_name"`
	CustomerEmail    string     `json:"customer_email" db:"customer_email"`
	CustomerPhone    *string    `json:"customer_phone" db:"customer_phone"`
	PickupLocation   *string    `json:"pickup_location" db:"pickup_location"`
	Status           string     `json:"status" db:"status"`
	AssignedDriverID *uuid.UUID `json:"assigned_driver_id" db:"assigned_driver_id"`
	RentalStart      time.Time  `json:"rental_start_date" db:"rental_start_date"`
	RentalEnd        time.Time  `json:"rental_end_date" db:"rental_end_date"`
	TotalPrice       float64    `json:"total_price" db:"total_price"`
	StartFuel        *float64   `json:"start_fuel" db:"start_fuel"`
	EndFuel          *float64   `json:"end_fuel" db:"end_fuel"`
	PaymentAtStart   *float64   `json:"payment_at_start" db:"payment_at_start"`
	PaymentAtEnd     *float64   `json:"payment_at_end" db:"payment_at_end"`
	FuelCharge       *float64   `json:"fuel_charge" db:"fuel_charge"`
	DelayFee         *float64   `json:"delay_fee" db:"delay_fee"`
	DelayHours       *float64   `json:"delay_hours" db:"delay_hours"`
	DeclineReason    *string    `json:"decline_reason" db:"decline_reason"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidBookingStatus reports whether status is a known lifecycle state.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusOngoing,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusDeclined:
		return true
	}
	return false
}
