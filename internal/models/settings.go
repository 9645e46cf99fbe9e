package models

import (
	"time"

	"github.com/google/uuid"
)

// SystemSettings holds the per-tenant settlement rates. One record per
// tenant; owner-only write.
type SystemSettings struct {
	TenantID          uuid.UUID `json:"tenant_id" db:"tenant_id"`
	FuelPricePerLiter float64   `json:"fuel_price_per_liter" db:"fuel_price_per_liter"`
	DelayFeePerHour   float64   `json:"delay_fee_per_hour" db:"delay_fee_per_hour"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
