package repositories

import (
	"context"
	"fmt"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	// DeleteCascade removes the vehicle and all of its variants in one
	// transaction so a partial failure cannot leave orphaned variants.
	DeleteCascade(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error)
}

type vehicleRepo struct {
	db DB
}

func NewVehicleRepo(db DB) VehicleRepository {
	return &vehicleRepo{db: db}
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, tenant_id, make, model, year, description, daily_rate, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vehicle.ID, vehicle.TenantID, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Description, vehicle.DailyRate, vehicle.ImageURL)
	return err
}

func (r *vehicleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	query := `
		SELECT id, tenant_id, make, model, year, description, daily_rate, image_url, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&vehicle.ID, &vehicle.TenantID, &vehicle.Make, &vehicle.Model, &vehicle.Year, &vehicle.Description, &vehicle.DailyRate, &vehicle.ImageURL, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, description = $4, daily_rate = $5, image_url = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Description, vehicle.DailyRate, vehicle.ImageURL, vehicle.TenantID, vehicle.ID)
	return err
}

func (r *vehicleRepo) DeleteCascade(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM vehicle_variants WHERE tenant_id = $1 AND vehicle_id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete variants: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM vehicles WHERE tenant_id = $1 AND id = $2`, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *vehicleRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	query := `
		SELECT id, tenant_id, make, model, year, description, daily_rate, image_url, created_at, updated_at
		FROM vehicles
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle := &models.Vehicle{}
		if err := rows.Scan(&vehicle.ID, &vehicle.TenantID, &vehicle.Make, &vehicle.Model, &vehicle.Year, &vehicle.Description, &vehicle.DailyRate, &vehicle.ImageURL, &vehicle.CreatedAt, &vehicle.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}
