package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type WebsiteRepository interface {
	GetContent(ctx context.Context, tenantID uuid.UUID) (*models.WebsiteContent, error)
	UpsertContent(ctx context.Context, content *models.WebsiteContent) error
}

type websiteRepo struct {
	db DB
}

func NewWebsiteRepo(db DB) WebsiteRepository {
	return &websiteRepo{db: db}
}

func (r *websiteRepo) GetContent(ctx context.Context, tenantID uuid.UUID) (*models.WebsiteContent, error) {
	content := &models.WebsiteContent{}
	query := `
		SELECT tenant_id, hero_title, hero_subtitle, about_text, contact_email, contact_phone, updated_at
		FROM website_content
		WHERE tenant_id = $1
	`
	err := r.db.QueryRow(ctx, query, tenantID).Scan(&content.TenantID, &content.HeroTitle, &content.HeroSubtitle, &content.AboutText, &content.ContactEmail, &content.ContactPhone, &content.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (r *websiteRepo) UpsertContent(ctx context.Context, content *models.WebsiteContent) error {
	query := `
		INSERT INTO website_content (tenant_id, hero_title, hero_subtitle, about_text, contact_email, contact_phone, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET hero_title = EXCLUDED.hero_title, hero_subtitle = EXCLUDED.hero_subtitle,
		    about_text = EXCLUDED.about_text, contact_email = EXCLUDED.contact_email,
		    contact_phone = EXCLUDED.contact_phone, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, content.TenantID, content.HeroTitle, content.HeroSubtitle, content.AboutText, content.ContactEmail, content.ContactPhone)
	return err
}
