package services

import (
	"context"
	"fmt"

	"fleetrent/internal/caching"
	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AppUserService provisions and manages staff accounts. Creation and
// mutation are owner-only; role and owner_uid never change after
// creation.
type AppUserService interface {
	Create(ctx context.Context, sess common.Session, user *models.AppUser, password string) error
	GetByID(ctx context.Context, sess common.Session, id uuid.UUID) (*models.AppUser, error)
	Update(ctx context.Context, sess common.Session, user *models.AppUser) error
	Delete(ctx context.Context, sess common.Session, id uuid.UUID) error
	List(ctx context.Context, sess common.Session, limit, offset int) ([]*models.AppUser, error)
	// RegisterOwner bootstraps a tenant: the new account's owner_uid is
	// its own id, and a matching business record is created.
	RegisterOwner(ctx context.Context, user *models.AppUser, businessName, password string) error
}

type appUserService struct {
	userRepo   repositories.AppUserRepository
	tenantRepo repositories.TenantRepository
	cacheSvc   caching.CacheService
	events     changes.Broker
}

func NewAppUserService(userRepo repositories.AppUserRepository, tenantRepo repositories.TenantRepository, cacheSvc caching.CacheService, events changes.Broker) AppUserService {
	return &appUserService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		cacheSvc:   cacheSvc,
		events:     events,
	}
}

func (s *appUserService) Create(ctx context.Context, sess common.Session, user *models.AppUser, password string) error {
	if sess.Role != models.RoleOwner {
		return common.ErrNotFound
	}
	if err := common.ValidateRequiredString(user.FullName, "full_name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(user.Email, "email"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(password, "password"); err != nil {
		return err
	}
	if !models.ValidRole(user.Role) {
		return fmt.Errorf("%w: role must be owner, admin or driver", common.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New()
	user.OwnerUID = sess.TenantID
	user.Status = models.UserStatusActive
	user.PasswordHash = string(hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityAppUsers, changes.ActionCreated, sess.TenantID, user.ID)
	return nil
}

func (s *appUserService) RegisterOwner(ctx context.Context, user *models.AppUser, businessName, password string) error {
	if err := common.ValidateRequiredString(user.FullName, "full_name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(user.Email, "email"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(businessName, "business_name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(password, "password"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.ID = uuid.New()
	user.OwnerUID = user.ID
	user.Role = models.RoleOwner
	user.Status = models.UserStatusActive
	user.PasswordHash = string(hash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	tenant := &models.Tenant{
		ID:           user.ID,
		BusinessName: businessName,
		ContactEmail: user.Email,
		ContactPhone: user.ContactNumber,
		Status:       models.UserStatusActive,
	}
	return s.tenantRepo.Create(ctx, tenant)
}

func (s *appUserService) GetByID(ctx context.Context, sess common.Session, id uuid.UUID) (*models.AppUser, error) {
	user, err := s.userRepo.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return user, nil
}

func (s *appUserService) Update(ctx context.Context, sess common.Session, user *models.AppUser) error {
	if sess.Role != models.RoleOwner {
		return common.ErrNotFound
	}
	if err := common.ValidateRequiredString(user.FullName, "full_name"); err != nil {
		return err
	}
	if user.Status != models.UserStatusActive && user.Status != models.UserStatusDisabled {
		return fmt.Errorf("%w: status must be active or disabled", common.ErrInvalidArgument)
	}

	if _, err := s.userRepo.GetByID(ctx, sess.TenantID, user.ID); err != nil {
		return common.ErrNotFound
	}

	user.OwnerUID = sess.TenantID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityAppUsers, changes.ActionUpdated, sess.TenantID, user.ID)
	// A disabled or renamed account must not keep serving from cache.
	return s.cacheSvc.DeleteSessionUser(ctx, user.ID)
}

func (s *appUserService) Delete(ctx context.Context, sess common.Session, id uuid.UUID) error {
	if sess.Role != models.RoleOwner {
		return common.ErrNotFound
	}
	if id == sess.UserID {
		return fmt.Errorf("%w: an owner cannot delete their own account", common.ErrInvalidArgument)
	}
	if _, err := s.userRepo.GetByID(ctx, sess.TenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.userRepo.Delete(ctx, sess.TenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityAppUsers, changes.ActionDeleted, sess.TenantID, id)
	return s.cacheSvc.DeleteSessionUser(ctx, id)
}

func (s *appUserService) List(ctx context.Context, sess common.Session, limit, offset int) ([]*models.AppUser, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.userRepo.List(ctx, sess.TenantID, limit, offset)
}
