package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
)

const vehicleCacheTTL = 10 * time.Minute

type VehicleService interface {
	Create(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error
	// Delete removes the vehicle together with all of its variants.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error)
	UploadImage(ctx context.Context, tenantID, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*models.Vehicle, error)
}

type vehicleService struct {
	vehicleRepo repositories.VehicleRepository
	storage     StorageService
	cacheSvc    caching.CacheService
	events      changes.Broker
}

func NewVehicleService(vehicleRepo repositories.VehicleRepository, storage StorageService, cacheSvc caching.CacheService, events changes.Broker) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		storage:     storage,
		cacheSvc:    cacheSvc,
		events:      events,
	}
}

func (s *vehicleService) Create(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	if err := common.ValidateRequiredString(vehicle.Make, "make"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(vehicle.Model, "model"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(vehicle.DailyRate, "daily_rate"); err != nil {
		return err
	}

	vehicle.ID = uuid.New()
	vehicle.TenantID = tenantID
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVehicles, changes.ActionCreated, tenantID, vehicle.ID)
	return nil
}

func (s *vehicleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	if cached, err := s.cacheSvc.GetVehicle(ctx, tenantID, id); err == nil && cached != nil {
		return cached, nil
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	if err := s.cacheSvc.SetVehicle(ctx, vehicle, vehicleCacheTTL); err != nil {
		log.Printf("Failed to cache vehicle %s: %v", vehicle.ID, err)
	}
	return vehicle, nil
}

func (s *vehicleService) Update(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	if err := common.ValidateRequiredString(vehicle.Make, "make"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(vehicle.Model, "model"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(vehicle.DailyRate, "daily_rate"); err != nil {
		return err
	}

	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, vehicle.ID); err != nil {
		return common.ErrNotFound
	}

	vehicle.TenantID = tenantID
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVehicles, changes.ActionUpdated, tenantID, vehicle.ID)
	return s.cacheSvc.DeleteVehicle(ctx, tenantID, vehicle.ID)
}

func (s *vehicleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.vehicleRepo.DeleteCascade(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVehicles, changes.ActionDeleted, tenantID, id)
	return s.cacheSvc.DeleteVehicle(ctx, tenantID, id)
}

func (s *vehicleService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.vehicleRepo.List(ctx, tenantID, limit, offset)
}

func (s *vehicleService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	path := fmt.Sprintf("%s/%s", id.String(), fileName)
	objectName, err := s.storage.UploadVehicleImage(ctx, tenantID, path, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload vehicle image: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image URL: %w", err)
	}

	vehicle.ImageURL = &url
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	if err := s.cacheSvc.DeleteVehicle(ctx, tenantID, id); err != nil {
		log.Printf("Failed to invalidate vehicle cache %s: %v", id, err)
	}
	changes.Emit(ctx, s.events, changes.EntityVehicles, changes.ActionUpdated, tenantID, id)
	return vehicle, nil
}
