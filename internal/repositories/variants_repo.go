package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *models.VehicleVariant) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error)
	Update(ctx context.Context, variant *models.VehicleVariant) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VehicleVariant, error)
	// UpdateAvailable writes a new available quantity only. Deliberately
	// no version stamp: two concurrent adjustments race last-write-wins,
	// matching the backing store's semantics.
	UpdateAvailable(ctx context.Context, tenantID, id uuid.UUID, available int) error
}

type variantRepo struct {
	db DB
}

func NewVariantRepo(db DB) VariantRepository {
	return &variantRepo{db: db}
}

func (r *variantRepo) Create(ctx context.Context, variant *models.VehicleVariant) error {
	query := `
		INSERT INTO vehicle_variants (id, tenant_id, vehicle_id, color, total_quantity, available_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, variant.ID, variant.TenantID, variant.VehicleID, variant.Color, variant.TotalQuantity, variant.AvailableQuantity)
	return err
}

func (r *variantRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error) {
	variant := &models.VehicleVariant{}
	query := `
		SELECT id, tenant_id, vehicle_id, color, total_quantity, available_quantity, created_at, updated_at
		FROM vehicle_variants
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&variant.ID, &variant.TenantID, &variant.VehicleID, &variant.Color, &variant.TotalQuantity, &variant.AvailableQuantity, &variant.CreatedAt, &variant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *variantRepo) Update(ctx context.Context, variant *models.VehicleVariant) error {
	query := `
		UPDATE vehicle_variants
		SET color = $1, total_quantity = $2, available_quantity = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, variant.Color, variant.TotalQuantity, variant.AvailableQuantity, variant.TenantID, variant.ID)
	return err
}

func (r *variantRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM vehicle_variants WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *variantRepo) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error) {
	query := `
		SELECT id, tenant_id, vehicle_id, color, total_quantity, available_quantity, created_at, updated_at
		FROM vehicle_variants
		WHERE tenant_id = $1 AND vehicle_id = $2
		ORDER BY color ASC
	`
	rows, err := r.db.Query(ctx, query, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVariants(rows)
}

func (r *variantRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VehicleVariant, error) {
	query := `
		SELECT id, tenant_id, vehicle_id, color, total_quantity, available_quantity, created_at, updated_at
		FROM vehicle_variants
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVariants(rows)
}

func (r *variantRepo) UpdateAvailable(ctx context.Context, tenantID, id uuid.UUID, available int) error {
	query := `
		UPDATE vehicle_variants
		SET available_quantity = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, available, tenantID, id)
	return err
}

func scanVariants(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*models.VehicleVariant, error) {
	var variants []*models.VehicleVariant
	for rows.Next() {
		variant := &models.VehicleVariant{}
		if err := rows.Scan(&variant.ID, &variant.TenantID, &variant.VehicleID, &variant.Color, &variant.TotalQuantity, &variant.AvailableQuantity, &variant.CreatedAt, &variant.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return variants, rows.Err()
}
