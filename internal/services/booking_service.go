package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fleetrent/internal/caching"
	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/mailer"
	"fleetrent/internal/models"
	"fleetrent/internal/repositories"
	"fleetrent/internal/settlement"

	"github.com/google/uuid"
)

// BookingService drives the rental lifecycle. Methods take the resolved
// session because visibility depends on role: owners and admins see the
// whole tenant, drivers only bookings assigned to them.
type BookingService interface {
	Create(ctx context.Context, tenantID uuid.UUID, booking *models.Booking) error
	GetByID(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, sess common.Session, limit, offset int) ([]*models.Booking, error)
	ListByStatus(ctx context.Context, sess common.Session, status string, limit, offset int) ([]*models.Booking, error)
	Update(ctx context.Context, sess common.Session, booking *models.Booking) error
	Delete(ctx context.Context, sess common.Session, id uuid.UUID) error

	Confirm(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, *mailer.Result, error)
	Decline(ctx context.Context, sess common.Session, id uuid.UUID, reason string) (*models.Booking, *mailer.Result, error)
	Cancel(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, *mailer.Result, error)
	AssignDriver(ctx context.Context, sess common.Session, id, driverID uuid.UUID) (*models.Booking, error)
	StartTrip(ctx context.Context, sess common.Session, id uuid.UUID, startFuel, paymentAtStart float64) (*models.Booking, error)
	// CompleteTrip runs the settlement against the tenant's current rates
	// and persists the result onto the booking. Completion is not emailed.
	CompleteTrip(ctx context.Context, sess common.Session, id uuid.UUID, endFuel, paymentAtEnd float64) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo      repositories.BookingRepository
	variantRepo      repositories.VariantRepository
	vehicleRepo      repositories.VehicleRepository
	userRepo         repositories.AppUserRepository
	notificationRepo repositories.NotificationRepository
	settingsSvc      SettingsService
	mail             mailer.Mailer
	cacheSvc         caching.CacheService
	events           changes.Broker
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	variantRepo repositories.VariantRepository,
	vehicleRepo repositories.VehicleRepository,
	userRepo repositories.AppUserRepository,
	notificationRepo repositories.NotificationRepository,
	settingsSvc SettingsService,
	mail mailer.Mailer,
	cacheSvc caching.CacheService,
	events changes.Broker,
) BookingService {
	return &bookingService{
		bookingRepo:      bookingRepo,
		variantRepo:      variantRepo,
		vehicleRepo:      vehicleRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		settingsSvc:      settingsSvc,
		mail:             mail,
		cacheSvc:         cacheSvc,
		events:           events,
	}
}

func (s *bookingService) Create(ctx context.Context, tenantID uuid.UUID, booking *models.Booking) error {
	if err := common.ValidateRequiredString(booking.CustomerName, "customer_name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(booking.CustomerEmail, "customer_email"); err != nil {
		return err
	}
	if err := common.ValidateDateRange(booking.RentalStart, booking.RentalEnd, "rental period"); err != nil {
		return err
	}
	if err := common.ValidateNonNegativeFloat(booking.TotalPrice, "total_price"); err != nil {
		return err
	}

	if _, err := s.variantRepo.GetByID(ctx, tenantID, booking.VariantID); err != nil {
		return common.ErrNotFound
	}

	booking.ID = uuid.New()
	booking.TenantID = tenantID
	booking.Status = models.BookingStatusPending
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return err
	}

	s.notify(ctx, tenantID, booking.ID, fmt.Sprintf("New booking request from %s", booking.CustomerName))
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionCreated, tenantID, booking.ID)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	if !s.visible(sess, booking) {
		return nil, common.ErrNotFound
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, sess common.Session, limit, offset int) ([]*models.Booking, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	if sess.Role == models.RoleDriver {
		return s.bookingRepo.ListByDriver(ctx, sess.TenantID, sess.UserID, limit, offset)
	}
	return s.bookingRepo.List(ctx, sess.TenantID, limit, offset)
}

func (s *bookingService) ListByStatus(ctx context.Context, sess common.Session, status string, limit, offset int) ([]*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", common.ErrInvalidArgument, status)
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	if sess.Role == models.RoleDriver {
		bookings, err := s.bookingRepo.ListByDriver(ctx, sess.TenantID, sess.UserID, limit, offset)
		if err != nil {
			return nil, err
		}
		filtered := make([]*models.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == status {
				filtered = append(filtered, b)
			}
		}
		return filtered, nil
	}
	return s.bookingRepo.ListByStatus(ctx, sess.TenantID, status, limit, offset)
}

func (s *bookingService) Update(ctx context.Context, sess common.Session, booking *models.Booking) error {
	current, err := s.GetByID(ctx, sess, booking.ID)
	if err != nil {
		return err
	}
	if err := common.ValidateRequiredString(booking.CustomerName, "customer_name"); err != nil {
		return err
	}
	if err := common.ValidateEmail(booking.CustomerEmail, "customer_email"); err != nil {
		return err
	}
	if err := common.ValidateDateRange(booking.RentalStart, booking.RentalEnd, "rental period"); err != nil {
		return err
	}

	// Status transitions only go through the dedicated operations.
	booking.TenantID = sess.TenantID
	booking.Status = current.Status
	booking.StartFuel = current.StartFuel
	booking.EndFuel = current.EndFuel
	booking.PaymentAtStart = current.PaymentAtStart
	booking.PaymentAtEnd = current.PaymentAtEnd
	booking.FuelCharge = current.FuelCharge
	booking.DelayFee = current.DelayFee
	booking.DelayHours = current.DelayHours
	booking.DeclineReason = current.DeclineReason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	return nil
}

func (s *bookingService) Delete(ctx context.Context, sess common.Session, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, sess, id); err != nil {
		return err
	}
	if err := s.bookingRepo.Delete(ctx, sess.TenantID, id); err != nil {
		return err
	}
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionDeleted, sess.TenantID, id)
	return nil
}

func (s *bookingService) Confirm(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, *mailer.Result, error) {
	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, nil, fmt.Errorf("%w: only pending bookings can be confirmed", common.ErrInvalidArgument)
	}

	booking.Status = models.BookingStatusConfirmed
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	// Reserve one unit of the booked variant.
	if variant, err := s.variantRepo.GetByID(ctx, sess.TenantID, booking.VariantID); err == nil {
		available := variant.AvailableQuantity - 1
		if available < 0 {
			available = 0
		}
		if err := s.variantRepo.UpdateAvailable(ctx, sess.TenantID, variant.ID, available); err != nil {
			log.Printf("Failed to decrement variant %s availability: %v", variant.ID, err)
		}
	}

	s.notify(ctx, sess.TenantID, booking.ID, fmt.Sprintf("Booking for %s confirmed", booking.CustomerName))
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	result := s.sendStatusEmail(ctx, booking)
	return booking, result, nil
}

func (s *bookingService) Decline(ctx context.Context, sess common.Session, id uuid.UUID, reason string) (*models.Booking, *mailer.Result, error) {
	if err := common.ValidateRequiredString(reason, "decline_reason"); err != nil {
		return nil, nil, err
	}

	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, nil, fmt.Errorf("%w: only pending bookings can be declined", common.ErrInvalidArgument)
	}

	booking.Status = models.BookingStatusDeclined
	booking.DeclineReason = &reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	s.notify(ctx, sess.TenantID, booking.ID, fmt.Sprintf("Booking for %s declined", booking.CustomerName))
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	result := s.sendStatusEmail(ctx, booking)
	return booking, result, nil
}

func (s *bookingService) Cancel(ctx context.Context, sess common.Session, id uuid.UUID) (*models.Booking, *mailer.Result, error) {
	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, nil, err
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, nil, fmt.Errorf("%w: only pending or confirmed bookings can be cancelled", common.ErrInvalidArgument)
	}

	wasConfirmed := booking.Status == models.BookingStatusConfirmed
	booking.Status = models.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, nil, err
	}

	if wasConfirmed {
		s.releaseVariant(ctx, sess.TenantID, booking.VariantID)
	}

	s.notify(ctx, sess.TenantID, booking.ID, fmt.Sprintf("Booking for %s cancelled", booking.CustomerName))
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	result := s.sendStatusEmail(ctx, booking)
	return booking, result, nil
}

func (s *bookingService) AssignDriver(ctx context.Context, sess common.Session, id, driverID uuid.UUID) (*models.Booking, error) {
	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	driver, err := s.userRepo.GetByID(ctx, sess.TenantID, driverID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	if driver.Role != models.RoleDriver {
		return nil, fmt.Errorf("%w: assignee must be a driver", common.ErrInvalidArgument)
	}
	if driver.Status != models.UserStatusActive {
		return nil, fmt.Errorf("%w: driver account is disabled", common.ErrInvalidArgument)
	}

	booking.AssignedDriverID = &driverID
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	return booking, nil
}

func (s *bookingService) StartTrip(ctx context.Context, sess common.Session, id uuid.UUID, startFuel, paymentAtStart float64) (*models.Booking, error) {
	if err := common.ValidateNonNegativeFloat(startFuel, "start_fuel"); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeFloat(paymentAtStart, "payment_at_start"); err != nil {
		return nil, err
	}

	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed bookings can start a trip", common.ErrInvalidArgument)
	}

	booking.Status = models.BookingStatusOngoing
	booking.StartFuel = &startFuel
	booking.PaymentAtStart = &paymentAtStart
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	return booking, nil
}

func (s *bookingService) CompleteTrip(ctx context.Context, sess common.Session, id uuid.UUID, endFuel, paymentAtEnd float64) (*models.Booking, error) {
	if err := common.ValidateNonNegativeFloat(endFuel, "end_fuel"); err != nil {
		return nil, err
	}
	if err := common.ValidateNonNegativeFloat(paymentAtEnd, "payment_at_end"); err != nil {
		return nil, err
	}

	booking, err := s.GetByID(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusOngoing {
		return nil, fmt.Errorf("%w: only ongoing trips can be completed", common.ErrInvalidArgument)
	}

	settings, err := s.settingsSvc.Get(ctx, sess.TenantID)
	if err != nil {
		return nil, err
	}

	res := settlement.Calculate(settlement.Input{
		StartFuelLevel:  common.SafeFloat64(booking.StartFuel),
		EndFuelLevel:    endFuel,
		ExpectedReturn:  booking.RentalEnd,
		ActualReturn:    time.Now(),
		FuelPricePerL:   settings.FuelPricePerLiter,
		DelayFeePerHour: settings.DelayFeePerHour,
	})

	booking.Status = models.BookingStatusCompleted
	booking.EndFuel = &endFuel
	booking.PaymentAtEnd = &paymentAtEnd
	booking.FuelCharge = &res.FuelCharge
	booking.DelayFee = &res.DelayFee
	booking.DelayHours = &res.DelayHours
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.releaseVariant(ctx, sess.TenantID, booking.VariantID)
	s.notify(ctx, sess.TenantID, booking.ID, fmt.Sprintf("Trip for %s completed", booking.CustomerName))
	changes.Emit(ctx, s.events, changes.EntityBookings, changes.ActionUpdated, sess.TenantID, booking.ID)
	if err := s.cacheSvc.InvalidateNetBalance(ctx, sess.TenantID); err != nil {
		log.Printf("Failed to invalidate net balance cache for tenant %s: %v", sess.TenantID, err)
	}
	return booking, nil
}

// visible applies driver assignment scoping on top of the tenant guard.
func (s *bookingService) visible(sess common.Session, booking *models.Booking) bool {
	if sess.Role != models.RoleDriver {
		return true
	}
	return booking.AssignedDriverID != nil && *booking.AssignedDriverID == sess.UserID
}

func (s *bookingService) releaseVariant(ctx context.Context, tenantID, variantID uuid.UUID) {
	variant, err := s.variantRepo.GetByID(ctx, tenantID, variantID)
	if err != nil {
		log.Printf("Failed to load variant %s for release: %v", variantID, err)
		return
	}
	available := variant.AvailableQuantity + 1
	if available > variant.TotalQuantity {
		available = variant.TotalQuantity
	}
	if err := s.variantRepo.UpdateAvailable(ctx, tenantID, variantID, available); err != nil {
		log.Printf("Failed to release variant %s: %v", variantID, err)
	}
}

func (s *bookingService) notify(ctx context.Context, tenantID, bookingID uuid.UUID, message string) {
	notification := &models.Notification{
		ID:        uuid.New(),
		TenantID:  tenantID,
		BookingID: &bookingID,
		Message:   message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("Failed to create notification for booking %s: %v", bookingID, err)
		return
	}
	changes.Emit(ctx, s.events, changes.EntityNotifications, changes.ActionCreated, tenantID, notification.ID)
}

// sendStatusEmail builds the status payload and fires the remote email
// function. The result, success or failure, is returned to the caller
// untouched; nothing is retried.
func (s *bookingService) sendStatusEmail(ctx context.Context, booking *models.Booking) *mailer.Result {
	email := &mailer.StatusUpdateEmail{
		CustomerEmail:  booking.CustomerEmail,
		CustomerName:   booking.CustomerName,
		BookingID:      booking.ID.String(),
		Vehicle:        s.vehicleDescriptor(ctx, booking),
		RentalStart:    booking.RentalStart.Format("2006-01-02"),
		RentalEnd:      booking.RentalEnd.Format("2006-01-02"),
		PickupLocation: common.SafeString(booking.PickupLocation),
		TotalPrice:     booking.TotalPrice,
		NewStatus:      booking.Status,
		DeclineReason:  common.SafeString(booking.DeclineReason),
	}

	result, err := s.mail.SendStatusUpdate(ctx, email)
	if err != nil {
		log.Printf("Status email for booking %s failed: %v", booking.ID, err)
		return &mailer.Result{Success: false, Error: err.Error()}
	}
	return result
}

func (s *bookingService) vehicleDescriptor(ctx context.Context, booking *models.Booking) string {
	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.TenantID, booking.VehicleID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s %d", vehicle.Make, vehicle.Model, vehicle.Year)
}
