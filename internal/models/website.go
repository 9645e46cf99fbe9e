package models

import (
	"time"

	"github.com/google/uuid"
)

// WebsiteContent holds the editable copy of the customer booking site.
// One record per tenant.
type WebsiteContent struct {
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	HeroTitle    string    `json:"hero_title" db:"hero_title"`
	HeroSubtitle *string   `json:"hero_subtitle" db:"hero_subtitle"`
	AboutText    *string   `json:"about_text" db:"about_text"`
	ContactEmail *string   `json:"contact_email" db:"contact_email"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type GalleryImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenantID  uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Caption   *string   `json:"caption" db:"caption"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
