package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
)

type CarOwnerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, carOwner *models.CarOwner) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CarOwner, error)
	Update(ctx context.Context, tenantID uuid.UUID, carOwner *models.CarOwner) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CarOwner, error)
	UploadGovernmentID(ctx context.Context, tenantID, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*models.CarOwner, error)
}

type carOwnerService struct {
	carOwnerRepo repositories.CarOwnerRepository
	storage      StorageService
	events       changes.Broker
}

func NewCarOwnerService(carOwnerRepo repositories.CarOwnerRepository, storage StorageService, events changes.Broker) CarOwnerService {
	return &carOwnerService{
		carOwnerRepo: carOwnerRepo,
		storage:      storage,
		events:       events,
	}
}

func (s *carOwnerService) Create(ctx context.Context, tenantID uuid.UUID, carOwner *models.CarOwner) error {
	if err := common.ValidateRequiredString(carOwner.FullName, "full_name"); err != nil {
		return err
	}
	if carOwner.Email != nil {
		if err := common.ValidateEmail(*carOwner.Email, "email"); err != nil {
			return err
		}
	}

	carOwner.ID = uuid.New()
	carOwner.TenantID = tenantID
	if err := s.carOwnerRepo.Create(ctx, carOwner); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityCarOwners, changes.ActionCreated, tenantID, carOwner.ID)
	return nil
}

func (s *carOwnerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CarOwner, error) {
	carOwner, err := s.carOwnerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return carOwner, nil
}

func (s *carOwnerService) Update(ctx context.Context, tenantID uuid.UUID, carOwner *models.CarOwner) error {
	if err := common.ValidateRequiredString(carOwner.FullName, "full_name"); err != nil {
		return err
	}
	if carOwner.Email != nil {
		if err := common.ValidateEmail(*carOwner.Email, "email"); err != nil {
			return err
		}
	}

	if _, err := s.carOwnerRepo.GetByID(ctx, tenantID, carOwner.ID); err != nil {
		return common.ErrNotFound
	}

	carOwner.TenantID = tenantID
	if err := s.carOwnerRepo.Update(ctx, carOwner); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityCarOwners, changes.ActionUpdated, tenantID, carOwner.ID)
	return nil
}

func (s *carOwnerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.carOwnerRepo.GetByID(ctx, tenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.carOwnerRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityCarOwners, changes.ActionDeleted, tenantID, id)
	return nil
}

func (s *carOwnerService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CarOwner, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.carOwnerRepo.List(ctx, tenantID, limit, offset)
}

func (s *carOwnerService) UploadGovernmentID(ctx context.Context, tenantID, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*models.CarOwner, error) {
	carOwner, err := s.carOwnerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	objectName, err := s.storage.UploadGovernmentID(ctx, tenantID, fileName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload government ID: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document URL: %w", err)
	}

	carOwner.GovernmentIDURL = &url
	if err := s.carOwnerRepo.Update(ctx, carOwner); err != nil {
		return nil, err
	}
	changes.Emit(ctx, s.events, changes.EntityCarOwners, changes.ActionUpdated, tenantID, id)
	return carOwner, nil
}
