package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type CarOwnerRepository interface {
	Create(ctx context.Context, carOwner *models.CarOwner) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CarOwner, error)
	Update(ctx context.Context, carOwner *models.CarOwner) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CarOwner, error)
}

type carOwnerRepo struct {
	db DB
}

func NewCarOwnerRepo(db DB) CarOwnerRepository {
	return &carOwnerRepo{db: db}
}

func (r *carOwnerRepo) Create(ctx context.Context, carOwner *models.CarOwner) error {
	query := `
		INSERT INTO car_owners (id, tenant_id, full_name, email, contact_number, address, government_id_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, carOwner.ID, carOwner.TenantID, carOwner.FullName, carOwner.Email, carOwner.ContactNumber, carOwner.Address, carOwner.GovernmentIDURL)
	return err
}

func (r *carOwnerRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CarOwner, error) {
	carOwner := &models.CarOwner{}
	query := `
		SELECT id, tenant_id, full_name, email, contact_number, address, government_id_url, created_at, updated_at
		FROM car_owners
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&carOwner.ID, &carOwner.TenantID, &carOwner.FullName, &carOwner.Email, &carOwner.ContactNumber, &carOwner.Address, &carOwner.GovernmentIDURL, &carOwner.CreatedAt, &carOwner.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return carOwner, nil
}

func (r *carOwnerRepo) Update(ctx context.Context, carOwner *models.CarOwner) error {
	query := `
		UPDATE car_owners
		SET full_name = $1, email = $2, contact_number = $3, address = $4, government_id_url = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, carOwner.FullName, carOwner.Email, carOwner.ContactNumber, carOwner.Address, carOwner.GovernmentIDURL, carOwner.TenantID, carOwner.ID)
	return err
}

func (r *carOwnerRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM car_owners WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *carOwnerRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CarOwner, error) {
	// Reference data, listed by name rather than recency.
	query := `
		SELECT id, tenant_id, full_name, email, contact_number, address, government_id_url, created_at, updated_at
		FROM car_owners
		WHERE tenant_id = $1
		ORDER BY full_name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var carOwners []*models.CarOwner
	for rows.Next() {
		carOwner := &models.CarOwner{}
		if err := rows.Scan(&carOwner.ID, &carOwner.TenantID, &carOwner.FullName, &carOwner.Email, &carOwner.ContactNumber, &carOwner.Address, &carOwner.GovernmentIDURL, &carOwner.CreatedAt, &carOwner.UpdatedAt); err != nil {
			return nil, err
		}
		carOwners = append(carOwners, carOwner)
	}
	return carOwners, rows.Err()
}
