package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, tenantID, id uuid.UUID) error
	Dismiss(ctx context.Context, tenantID, id uuid.UUID) error
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepo(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (id, tenant_id, booking_id, message, read, dismissed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.TenantID, notification.BookingID, notification.Message, notification.Read, notification.Dismissed)
	return err
}

func (r *notificationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Notification, error) {
	notification := &models.Notification{}
	query := `
		SELECT id, tenant_id, booking_id, message, read, dismissed, created_at
		FROM notifications
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&notification.ID, &notification.TenantID, &notification.BookingID, &notification.Message, &notification.Read, &notification.Dismissed, &notification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *notificationRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	query := `
		SELECT id, tenant_id, booking_id, message, read, dismissed, created_at
		FROM notifications
		WHERE tenant_id = $1 AND dismissed = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		if err := rows.Scan(&notification.ID, &notification.TenantID, &notification.BookingID, &notification.Message, &notification.Read, &notification.Dismissed, &notification.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) MarkRead(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `UPDATE notifications SET read = TRUE WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *notificationRepo) Dismiss(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `UPDATE notifications SET dismissed = TRUE WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}
