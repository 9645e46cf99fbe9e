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

// WebsiteService manages the tenant's public site copy and photo
// gallery.
type WebsiteService interface {
	GetContent(ctx context.Context, tenantID uuid.UUID) (*models.WebsiteContent, error)
	UpdateContent(ctx context.Context, tenantID uuid.UUID, content *models.WebsiteContent) error
	ListGallery(ctx context.Context, tenantID uuid.UUID) ([]*models.GalleryImage, error)
	AddGalleryImage(ctx context.Context, tenantID uuid.UUID, caption *string, fileName string, reader io.Reader, size int64, contentType string) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, tenantID, id uuid.UUID) error
}

type websiteService struct {
	websiteRepo repositories.WebsiteRepository
	galleryRepo repositories.GalleryRepository
	storage     StorageService
	events      changes.Broker
}

func NewWebsiteService(websiteRepo repositories.WebsiteRepository, galleryRepo repositories.GalleryRepository, storage StorageService, events changes.Broker) WebsiteService {
	return &websiteService{
		websiteRepo: websiteRepo,
		galleryRepo: galleryRepo,
		storage:     storage,
		events:      events,
	}
}

func (s *websiteService) GetContent(ctx context.Context, tenantID uuid.UUID) (*models.WebsiteContent, error) {
	content, err := s.websiteRepo.GetContent(ctx, tenantID)
	if err != nil {
		// A tenant that never edited its site still gets a page.
		return &models.WebsiteContent{TenantID: tenantID}, nil
	}
	return content, nil
}

func (s *websiteService) UpdateContent(ctx context.Context, tenantID uuid.UUID, content *models.WebsiteContent) error {
	if err := common.ValidateRequiredString(content.HeroTitle, "hero_title"); err != nil {
		return err
	}
	if content.ContactEmail != nil {
		if err := common.ValidateEmail(*content.ContactEmail, "contact_email"); err != nil {
			return err
		}
	}

	content.TenantID = tenantID
	if err := s.websiteRepo.UpsertContent(ctx, content); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityWebsiteContent, changes.ActionUpdated, tenantID, tenantID)
	return nil
}

func (s *websiteService) ListGallery(ctx context.Context, tenantID uuid.UUID) ([]*models.GalleryImage, error) {
	return s.galleryRepo.List(ctx, tenantID)
}

func (s *websiteService) AddGalleryImage(ctx context.Context, tenantID uuid.UUID, caption *string, fileName string, reader io.Reader, size int64, contentType string) (*models.GalleryImage, error) {
	if err := common.ValidateRequiredString(fileName, "file_name"); err != nil {
		return nil, err
	}

	objectName, err := s.storage.UploadGalleryImage(ctx, tenantID, fileName, reader, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload gallery image: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, objectName, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate image URL: %w", err)
	}

	image := &models.GalleryImage{
		ID:       uuid.New(),
		TenantID: tenantID,
		Caption:  caption,
		ImageURL: url,
	}
	if err := s.galleryRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	changes.Emit(ctx, s.events, changes.EntityGallery, changes.ActionCreated, tenantID, image.ID)
	return image, nil
}

func (s *websiteService) DeleteGalleryImage(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.galleryRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityGallery, changes.ActionDeleted, tenantID, id)
	return nil
}
