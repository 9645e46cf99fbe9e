package services

import (
	"context"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"

	"github.com/google/uuid"
)

type VariantService interface {
	Create(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error)
	Update(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error)
	// AdjustQuantity shifts available_quantity by delta, clamped into
	// [0, total_quantity]. A double decrement that would go negative
	// clamps at zero instead of failing.
	AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) (*models.VehicleVariant, error)
}

type variantService struct {
	variantRepo repositories.VariantRepository
	vehicleRepo repositories.VehicleRepository
	events      changes.Broker
}

func NewVariantService(variantRepo repositories.VariantRepository, vehicleRepo repositories.VehicleRepository, events changes.Broker) VariantService {
	return &variantService{
		variantRepo: variantRepo,
		vehicleRepo: vehicleRepo,
		events:      events,
	}
}

func (s *variantService) Create(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error {
	if err := common.ValidateRequiredString(variant.Color, "color"); err != nil {
		return err
	}
	if variant.TotalQuantity < 0 {
		return common.ErrInvalidArgument
	}

	if _, err := s.vehicleRepo.GetByID(ctx, tenantID, variant.VehicleID); err != nil {
		return common.ErrNotFound
	}

	variant.ID = uuid.New()
	variant.TenantID = tenantID
	variant.AvailableQuantity = clamp(variant.AvailableQuantity, variant.TotalQuantity)
	if err := s.variantRepo.Create(ctx, variant); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVariants, changes.ActionCreated, tenantID, variant.ID)
	return nil
}

func (s *variantService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error) {
	variant, err := s.variantRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return variant, nil
}

func (s *variantService) Update(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error {
	if err := common.ValidateRequiredString(variant.Color, "color"); err != nil {
		return err
	}
	if variant.TotalQuantity < 0 {
		return common.ErrInvalidArgument
	}

	if _, err := s.variantRepo.GetByID(ctx, tenantID, variant.ID); err != nil {
		return common.ErrNotFound
	}

	variant.TenantID = tenantID
	variant.AvailableQuantity = clamp(variant.AvailableQuantity, variant.TotalQuantity)
	if err := s.variantRepo.Update(ctx, variant); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVariants, changes.ActionUpdated, tenantID, variant.ID)
	return nil
}

func (s *variantService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.variantRepo.GetByID(ctx, tenantID, id); err != nil {
		return common.ErrNotFound
	}
	if err := s.variantRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityVariants, changes.ActionDeleted, tenantID, id)
	return nil
}

func (s *variantService) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error) {
	return s.variantRepo.ListByVehicle(ctx, tenantID, vehicleID)
}

func (s *variantService) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) (*models.VehicleVariant, error) {
	variant, err := s.variantRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	variant.AvailableQuantity = clamp(variant.AvailableQuantity+delta, variant.TotalQuantity)
	if err := s.variantRepo.UpdateAvailable(ctx, tenantID, id, variant.AvailableQuantity); err != nil {
		return nil, err
	}
	changes.Emit(ctx, s.events, changes.EntityVariants, changes.ActionUpdated, tenantID, id)
	return variant, nil
}

func clamp(available, total int) int {
	if available < 0 {
		return 0
	}
	if available > total {
		return total
	}
	return available
}
