package services

import (
	"context"
	"log"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
)

const settingsCacheTTL = 15 * time.Minute

type SettingsService interface {
	// Get returns the tenant's settlement rates, zero-valued defaults if
	// the tenant never saved any.
	Get(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error)
	Update(ctx context.Context, tenantID uuid.UUID, settings *models.SystemSettings) error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	cacheSvc     caching.CacheService
	events       changes.Broker
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, cacheSvc caching.CacheService, events changes.Broker) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		cacheSvc:     cacheSvc,
		events:       events,
	}
}

func (s *settingsService) Get(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error) {
	if cached, err := s.cacheSvc.GetSettings(ctx, tenantID); err == nil && cached != nil {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx, tenantID)
	if err != nil {
		// No saved settings yet: charge nothing rather than fail.
		return &models.SystemSettings{TenantID: tenantID}, nil
	}

	if err := s.cacheSvc.SetSettings(ctx, settings, settingsCacheTTL); err != nil {
		log.Printf("Failed to cache settings for tenant %s: %v", tenantID, err)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, tenantID uuid.UUID, settings *models.SystemSettings) error {
	if err := common.ValidateNonNegativeFloat(settings.FuelPricePerLiter, "fuel_price_per_liter"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(settings.DelayFeePerHour, "delay_fee_per_hour"); err != nil {
		return err
	}

	settings.TenantID = tenantID
	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntitySettings, changes.ActionUpdated, tenantID, tenantID)
	return s.cacheSvc.DeleteSettings(ctx, tenantID)
}
