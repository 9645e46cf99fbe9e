package repositories

import (
	"context"

	"fleetrent/internal/models"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	// ListByDriver narrows the tenant listing to bookings assigned to one
	// driver; it is the only booking view a driver session gets.
	ListByDriver(ctx context.Context, tenantID, driverID uuid.UUID, limit, offset int) ([]*models.Booking, error)
	ListByStatus(ctx context.Context, tenantID uuid.UUID, status string, limit, offset int) ([]*models.Booking, error)
	ListCompleted(ctx context.Context, tenantID uuid.UUID) ([]*models.Booking, error)
	ListCompletedByDriver(ctx context.Context, tenantID, driverID uuid.UUID) ([]*models.Booking, error)
}

type bookingRepo struct {
	db DB
}

func NewBookingRepo(db DB) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, tenant_id, vehicle_id, vehicle_variant_id, customer_name, customer_email, customer_phone, pickup_location, status, assigned_driver_id, rental_start_date, rental_end_date, total_price, start_fuel, end_fuel, payment_at_start, payment_at_end, fuel_charge, delay_fee, delay_hours, decline_reason, created_at, updated_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(&b.ID, &b.TenantID, &b.VehicleID, &b.VariantID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.PickupLocation, &b.Status, &b.AssignedDriverID, &b.RentalStart, &b.RentalEnd, &b.TotalPrice, &b.StartFuel, &b.EndFuel, &b.PaymentAtStart, &b.PaymentAtEnd, &b.FuelCharge, &b.DelayFee, &b.DelayHours, &b.DeclineReason, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, tenant_id, vehicle_id, vehicle_variant_id, customer_name, customer_email, customer_phone, pickup_location, status, assigned_driver_id, rental_start_date, rental_end_date, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.TenantID, booking.VehicleID, booking.VariantID, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone, booking.PickupLocation, booking.Status, booking.AssignedDriverID, booking.RentalStart, booking.RentalEnd, booking.TotalPrice)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE tenant_id = $1 AND id = $2`
	return scanBooking(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET customer_name = $1, customer_email = $2, customer_phone = $3, pickup_location = $4,
		    status = $5, assigned_driver_id = $6, rental_start_date = $7, rental_end_date = $8,
		    total_price = $9, start_fuel = $10, end_fuel = $11, payment_at_start = $12,
		    payment_at_end = $13, fuel_charge = $14, delay_fee = $15, delay_hours = $16,
		    decline_reason = $17, updated_at = NOW()
		WHERE tenant_id = $18 AND id = $19
	`
	_, err := r.db.Exec(ctx, query, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone, booking.PickupLocation,
		booking.Status, booking.AssignedDriverID, booking.RentalStart, booking.RentalEnd,
		booking.TotalPrice, booking.StartFuel, booking.EndFuel, booking.PaymentAtStart,
		booking.PaymentAtEnd, booking.FuelCharge, booking.DelayFee, booking.DelayHours,
		booking.DeclineReason, booking.TenantID, booking.ID)
	return err
}

func (r *bookingRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *bookingRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryBookings(ctx, query, tenantID, limit, offset)
}

func (r *bookingRepo) ListByDriver(ctx context.Context, tenantID, driverID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND assigned_driver_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryBookings(ctx, query, tenantID, driverID, limit, offset)
}

func (r *bookingRepo) ListByStatus(ctx context.Context, tenantID uuid.UUID, status string, limit, offset int) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryBookings(ctx, query, tenantID, status, limit, offset)
}

func (r *bookingRepo) ListCompleted(ctx context.Context, tenantID uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND status = $2
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, tenantID, models.BookingStatusCompleted)
}

func (r *bookingRepo) ListCompletedByDriver(ctx context.Context, tenantID, driverID uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND status = $2 AND assigned_driver_id = $3
		ORDER BY created_at DESC
	`
	return r.queryBookings(ctx, query, tenantID, models.BookingStatusCompleted, driverID)
}

func (r *bookingRepo) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
