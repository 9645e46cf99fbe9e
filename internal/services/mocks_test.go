package services

import (
	"context"
	"time"

	"fleetrent/internal/changes"
	"fleetrent/internal/mailer"
	"fleetrent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and collaborators shared by the service tests.

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, event changes.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockBroker) Subscribe(ctx context.Context, tenantID uuid.UUID, entity string) (*changes.Subscription, error) {
	args := m.Called(ctx, tenantID, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*changes.Subscription), args.Error(1)
}

// publishedEvents filters the recorded Publish calls down to one entity.
func (m *MockBroker) publishedEvents(entity string) []changes.Event {
	var events []changes.Event
	for _, call := range m.Calls {
		if call.Method != "Publish" {
			continue
		}
		event := call.Arguments.Get(1).(changes.Event)
		if event.Entity == entity {
			events = append(events, event)
		}
	}
	return events
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByDriver(ctx context.Context, tenantID, driverID uuid.UUID, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID, driverID, limit, offset)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByStatus(ctx context.Context, tenantID uuid.UUID, status string, limit, offset int) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID, status, limit, offset)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListCompleted(ctx context.Context, tenantID uuid.UUID) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListCompletedByDriver(ctx context.Context, tenantID, driverID uuid.UUID) ([]*models.Booking, error) {
	args := m.Called(ctx, tenantID, driverID)
	return args.Get(0).([]*models.Booking), args.Error(1)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) Create(ctx context.Context, variant *models.VehicleVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleVariant), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, variant *models.VehicleVariant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVariantRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Get(0).([]*models.VehicleVariant), args.Error(1)
}

func (m *MockVariantRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.VehicleVariant), args.Error(1)
}

func (m *MockVariantRepository) UpdateAvailable(ctx context.Context, tenantID, id uuid.UUID, available int) error {
	args := m.Called(ctx, tenantID, id, available)
	return args.Error(0)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteCascade(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

type MockAppUserRepository struct {
	mock.Mock
}

func (m *MockAppUserRepository) Create(ctx context.Context, user *models.AppUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAppUserRepository) GetByID(ctx context.Context, ownerUID, id uuid.UUID) (*models.AppUser, error) {
	args := m.Called(ctx, ownerUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppUser), args.Error(1)
}

func (m *MockAppUserRepository) GetByIDAny(ctx context.Context, id uuid.UUID) (*models.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppUser), args.Error(1)
}

func (m *MockAppUserRepository) GetByEmail(ctx context.Context, email string) (*models.AppUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppUser), args.Error(1)
}

func (m *MockAppUserRepository) Update(ctx context.Context, user *models.AppUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockAppUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockAppUserRepository) Delete(ctx context.Context, ownerUID, id uuid.UUID) error {
	args := m.Called(ctx, ownerUID, id)
	return args.Error(0)
}

func (m *MockAppUserRepository) List(ctx context.Context, ownerUID uuid.UUID, limit, offset int) ([]*models.AppUser, error) {
	args := m.Called(ctx, ownerUID, limit, offset)
	return args.Get(0).([]*models.AppUser), args.Error(1)
}

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) Dismiss(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, tenantID uuid.UUID, settings *models.SystemSettings) error {
	args := m.Called(ctx, tenantID, settings)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendStatusUpdate(ctx context.Context, email *mailer.StatusUpdateEmail) (*mailer.Result, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailer.Result), args.Error(1)
}

func (m *MockMailer) SendBookingConfirmation(ctx context.Context, email *mailer.BookingConfirmationEmail) (*mailer.Result, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailer.Result), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetSessionUser(ctx context.Context, userID uuid.UUID) (*models.AppUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppUser), args.Error(1)
}

func (m *MockCacheService) SetSessionUser(ctx context.Context, user *models.AppUser, ttl time.Duration) error {
	args := m.Called(ctx, user, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteSessionUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*models.SystemSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemSettings), args.Error(1)
}

func (m *MockCacheService) SetSettings(ctx context.Context, settings *models.SystemSettings, ttl time.Duration) error {
	args := m.Called(ctx, settings, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteSettings(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) GetVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockCacheService) SetVehicle(ctx context.Context, vehicle *models.Vehicle, ttl time.Duration) error {
	args := m.Called(ctx, vehicle, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Error(0)
}

func (m *MockCacheService) GetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string) (map[string]interface{}, error) {
	args := m.Called(ctx, tenantID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockCacheService) SetNetBalance(ctx context.Context, tenantID uuid.UUID, scope string, report map[string]interface{}, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, scope, report, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateNetBalance(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
