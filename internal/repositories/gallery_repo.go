package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type GalleryRepository interface {
	Create(ctx context.Context, image *models.GalleryImage) error
	List(ctx context.Context, tenantID uuid.UUID) ([]*models.GalleryImage, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type galleryRepo struct {
	db DB
}

func NewGalleryRepo(db DB) GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) Create(ctx context.Context, image *models.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (id, tenant_id, caption, image_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, image.ID, image.TenantID, image.Caption, image.ImageURL)
	return err
}

func (r *galleryRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*models.GalleryImage, error) {
	query := `
		SELECT id, tenant_id, caption, image_url, created_at
		FROM gallery_images
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.GalleryImage
	for rows.Next() {
		image := &models.GalleryImage{}
		if err := rows.Scan(&image.ID, &image.TenantID, &image.Caption, &image.ImageURL, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *galleryRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM gallery_images WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
