package services

import (
	"context"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
)

// NotificationService exposes the in-app notification feed. Dismissed
// notifications drop out of the listing but stay in storage.
type NotificationService interface {
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, tenantID, id uuid.UUID) error
	Dismiss(ctx context.Context, tenantID, id uuid.UUID) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	events           changes.Broker
}

func NewNotificationService(notificationRepo repositories.NotificationRepository, events changes.Broker) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, events: events}
}

func (s *notificationService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.notificationRepo.List(ctx, tenantID, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.notificationRepo.GetByID(ctx, tenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.notificationRepo.MarkRead(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityNotifications, changes.ActionUpdated, tenantID, id)
	return nil
}

func (s *notificationService) Dismiss(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.notificationRepo.GetByID(ctx, tenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.notificationRepo.Dismiss(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityNotifications, changes.ActionUpdated, tenantID, id)
	return nil
}
