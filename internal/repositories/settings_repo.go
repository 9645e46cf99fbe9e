package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type SettingsRepository interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error)
	Upsert(ctx context.Context, settings *models.SystemSettings) error
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepo(db DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error) {
	settings := &models.SystemSettings{}
	query := `
		SELECT tenant_id, fuel_price_per_liter, delay_fee_per_hour, updated_at
		FROM system_settings
		WHERE tenant_id = $1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&settings.TenantID, &settings.FuelPricePerLiter, &settings.DelayFeePerHour, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, settings *models.SystemSettings) error {
	query := `
		INSERT INTO system_settings (tenant_id, fuel_price_per_liter, delay_fee_per_hour, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET fuel_price_per_liter = EXCLUDED.fuel_price_per_liter,
		    delay_fee_per_hour = EXCLUDED.delay_fee_per_hour,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, settings.TenantID, settings.FuelPricePerLiter, settings.DelayFeePerHour)
	return err
}
