package repositories

import (
	"context"
	"fmt"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type AppUserRepository interface {
	Create(ctx context.Context, user *models.AppUser) error
	GetByID(ctx context.Context, ownerUID, id uuid.UUID) (*models.AppUser, error)
	// GetByIDAny loads a user without a tenant guard; the session
	// middleware uses it to derive the effective owner id in the first
	// place.
	GetByIDAny(ctx context.Context, id uuid.UUID) (*models.AppUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AppUser, error)
	Update(ctx context.Context, user *models.AppUser) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	Delete(ctx context.Context, ownerUID, id uuid.UUID) error
	List(ctx context.Context, ownerUID uuid.UUID, limit, offset int) ([]*models.AppUser, error)
}

type appUserRepo struct {
	db DB
}

func NewAppUserRepo(db DB) AppUserRepository {
	return &appUserRepo{db: db}
}

const appUserColumns = `id, owner_uid, full_name, email, contact_number, role, status, password_hash, created_at, updated_at`

func (r *appUserRepo) scan(row interface{ Scan(dest ...any) error }) (*models.AppUser, error) {
	user := &models.AppUser{}
	err := row.Scan(&user.ID, &user.OwnerUID, &user.FullName, &user.Email, &user.ContactNumber, &user.Role, &user.Status, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *appUserRepo) Create(ctx context.Context, user *models.AppUser) error {
	var count int
	emailCheckQuery := `SELECT COUNT(*) FROM app_users WHERE email = $1`
	err := r.db.QueryRow(ctx, emailCheckQuery, user.Email).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("user with email '%s' already exists", user.Email)
	}

	query := `
		INSERT INTO app_users (id, owner_uid, full_name, email, contact_number, role, status, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, user.ID, user.OwnerUID, user.FullName, user.Email, user.ContactNumber, user.Role, user.Status, user.PasswordHash)
	return err
}

func (r *appUserRepo) GetByID(ctx context.Context, ownerUID, id uuid.UUID) (*models.AppUser, error) {
	query := `SELECT ` + appUserColumns + ` FROM app_users WHERE owner_uid = $1 AND id = $2`
	return r.scan(r.db.QueryRow(ctx, query, ownerUID, id))
}

func (r *appUserRepo) GetByIDAny(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	query := `SELECT ` + appUserColumns + ` FROM app_users WHERE id = $1`
	return r.scan(r.db.QueryRow(ctx, query, id))
}

func (r *appUserRepo) GetByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	query := `SELECT ` + appUserColumns + ` FROM app_users WHERE email = $1`
	return r.scan(r.db.QueryRow(ctx, query, email))
}

// Update never touches role or owner_uid; both are immutable after
// creation.
func (r *appUserRepo) Update(ctx context.Context, user *models.AppUser) error {
	query := `
		UPDATE app_users
		SET full_name = $1, contact_number = $2, status = $3, updated_at = NOW()
		WHERE owner_uid = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, user.FullName, user.ContactNumber, user.Status, user.OwnerUID, user.ID)
	return err
}

func (r *appUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE app_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, hash, id)
	return err
}

func (r *appUserRepo) Delete(ctx context.Context, ownerUID, id uuid.UUID) error {
	query := `DELETE FROM app_users WHERE owner_uid = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, ownerUID, id)
	return err
}

func (r *appUserRepo) List(ctx context.Context, ownerUID uuid.UUID, limit, offset int) ([]*models.AppUser, error) {
	query := `
		SELECT ` + appUserColumns + `
		FROM app_users
		WHERE owner_uid = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, ownerUID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.AppUser
	for rows.Next() {
		user, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
