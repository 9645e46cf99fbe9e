package services

import (
	"context"
	"fmt"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"
)

// TenantService exposes the business profile behind the caller's tenant.
type TenantService interface {
	Get(ctx context.Context, sess common.Session) (*models.Tenant, error)
	Update(ctx context.Context, sess common.Session, tenant *models.Tenant) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	events     changes.Broker
}

func NewTenantService(tenantRepo repositories.TenantRepository, events changes.Broker) TenantService {
	return &tenantService{tenantRepo: tenantRepo, events: events}
}

func (s *tenantService) Get(ctx context.Context, sess common.Session) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, sess.TenantID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, sess common.Session, tenant *models.Tenant) error {
	if sess.Role != models.RoleOwner {
		return common.ErrNotFound
	}
	if err := common.ValidateRequiredString(tenant.BusinessName, "business_name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(tenant.ContactEmail, "contact_email"); err != nil {
		return err
	}

	if _, err := s.tenantRepo.GetByID(ctx, sess.TenantID); err != nil {
		return common.ErrNotFound
	}

	// The id is always the caller's own tenant, never taken from the body.
	tenant.ID = sess.TenantID
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return fmt.Errorf("failed to update tenant profile: %w", err)
	}
	changes.Emit(ctx, s.events, changes.EntityTenant, changes.ActionUpdated, sess.TenantID, sess.TenantID)
	return nil
}
