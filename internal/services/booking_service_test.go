package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleetrent/internal/changes"
	"fleetrent/internal/common"
	"fleetrent/internal/mailer"
	"fleetrent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BookingServiceTestSuite struct {
	suite.Suite
	mockBookingRepo      *MockBookingRepository
	mockVariantRepo      *MockVariantRepository
	mockVehicleRepo      *MockVehicleRepository
	mockUserRepo         *MockAppUserRepository
	mockNotificationRepo *MockNotificationRepository
	mockSettingsSvc      *MockSettingsService
	mockMailer           *MockMailer
	mockCache            *MockCacheService
	mockBroker           *MockBroker
	service              BookingService
	tenantID             uuid.UUID
	adminSession         common.Session
}

func (suite *BookingServiceTestSuite) SetupTest() {
	suite.mockBookingRepo = &MockBookingRepository{}
	suite.mockVariantRepo = &MockVariantRepository{}
	suite.mockVehicleRepo = &MockVehicleRepository{}
	suite.mockUserRepo = &MockAppUserRepository{}
	suite.mockNotificationRepo = &MockNotificationRepository{}
	suite.mockSettingsSvc = &MockSettingsService{}
	suite.mockMailer = &MockMailer{}
	suite.mockCache = &MockCacheService{}
	suite.mockBroker = &MockBroker{}
	suite.mockBroker.On("Publish", mock.Anything, mock.AnythingOfType("changes.Event")).Return(nil).Maybe()
	suite.service = NewBookingService(
		suite.mockBookingRepo,
		suite.mockVariantRepo,
		suite.mockVehicleRepo,
		suite.mockUserRepo,
		suite.mockNotificationRepo,
		suite.mockSettingsSvc,
		suite.mockMailer,
		suite.mockCache,
		suite.mockBroker,
	)
	suite.tenantID = uuid.New()
	suite.adminSession = common.Session{
		UserID:   uuid.New(),
		TenantID: suite.tenantID,
		Role:     models.RoleAdmin,
	}
}

func (suite *BookingServiceTestSuite) TearDownTest() {
	suite.mockBookingRepo.AssertExpectations(suite.T())
	suite.mockVariantRepo.AssertExpectations(suite.T())
	suite.mockVehicleRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockNotificationRepo.AssertExpectations(suite.T())
	suite.mockSettingsSvc.AssertExpectations(suite.T())
	suite.mockMailer.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockBroker.AssertExpectations(suite.T())
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (suite *BookingServiceTestSuite) pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		TenantID:      suite.tenantID,
		VehicleID:     uuid.New(),
		VariantID:     uuid.New(),
		CustomerName:  "Maria Santos",
		CustomerEmail: "maria@example.com",
		Status:        models.BookingStatusPending,
		RentalStart:   time.Now().Add(24 * time.Hour),
		RentalEnd:     time.Now().Add(72 * time.Hour),
		TotalPrice:    4500,
	}
}

func (suite *BookingServiceTestSuite) expectStatusEmail(result *mailer.Result) {
	suite.mockVehicleRepo.On("GetByID", mock.Anything, suite.tenantID, mock.Anything).Return(nil, errors.New("no rows")).Once()
	suite.mockMailer.On("SendStatusUpdate", mock.Anything, mock.AnythingOfType("*mailer.StatusUpdateEmail")).Return(result, nil).Once()
}

func (suite *BookingServiceTestSuite) expectNotification() {
	suite.mockNotificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).Once()
}

func (suite *BookingServiceTestSuite) TestCreate_LandsPending() {
	booking := suite.pendingBooking()
	booking.ID = uuid.Nil
	booking.Status = ""

	suite.mockVariantRepo.On("GetByID", mock.Anything, suite.tenantID, booking.VariantID).Return(&models.VehicleVariant{ID: booking.VariantID}, nil).Once()
	suite.mockBookingRepo.On("Create", mock.Anything, booking).Return(nil).Once()
	suite.expectNotification()

	err := suite.service.Create(context.Background(), suite.tenantID, booking)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusPending, booking.Status)
	assert.NotEqual(suite.T(), uuid.Nil, booking.ID)
}

func (suite *BookingServiceTestSuite) TestGetByID_DriverSeesAssignedBooking() {
	driverID := uuid.New()
	sess := common.Session{UserID: driverID, TenantID: suite.tenantID, Role: models.RoleDriver}
	booking := suite.pendingBooking()
	booking.AssignedDriverID = &driverID

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	got, err := suite.service.GetByID(context.Background(), sess, booking.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), booking.ID, got.ID)
}

func (suite *BookingServiceTestSuite) TestGetByID_DriverCannotSeeUnassignedBooking() {
	sess := common.Session{UserID: uuid.New(), TenantID: suite.tenantID, Role: models.RoleDriver}
	otherDriver := uuid.New()
	booking := suite.pendingBooking()
	booking.AssignedDriverID = &otherDriver

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	_, err := suite.service.GetByID(context.Background(), sess, booking.ID)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *BookingServiceTestSuite) TestList_DriverScopedToAssignments() {
	driverID := uuid.New()
	sess := common.Session{UserID: driverID, TenantID: suite.tenantID, Role: models.RoleDriver}

	suite.mockBookingRepo.On("ListByDriver", mock.Anything, suite.tenantID, driverID, 50, 0).Return([]*models.Booking{}, nil).Once()

	_, err := suite.service.List(context.Background(), sess, 0, 0)

	assert.NoError(suite.T(), err)
}

func (suite *BookingServiceTestSuite) TestConfirm_ReservesVariantAndEmails() {
	booking := suite.pendingBooking()
	variant := &models.VehicleVariant{
		ID:                booking.VariantID,
		TenantID:          suite.tenantID,
		TotalQuantity:     2,
		AvailableQuantity: 2,
	}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()
	suite.mockVariantRepo.On("GetByID", mock.Anything, suite.tenantID, booking.VariantID).Return(variant, nil).Once()
	suite.mockVariantRepo.On("UpdateAvailable", mock.Anything, suite.tenantID, variant.ID, 1).Return(nil).Once()
	suite.expectNotification()
	suite.expectStatusEmail(&mailer.Result{Success: true})

	got, emailResult, err := suite.service.Confirm(context.Background(), suite.adminSession, booking.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusConfirmed, got.Status)
	assert.True(suite.T(), emailResult.Success)
}

func (suite *BookingServiceTestSuite) TestConfirm_PublishesChangeEvent() {
	booking := suite.pendingBooking()
	variant := &models.VehicleVariant{
		ID:                booking.VariantID,
		TenantID:          suite.tenantID,
		TotalQuantity:     2,
		AvailableQuantity: 2,
	}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()
	suite.mockVariantRepo.On("GetByID", mock.Anything, suite.tenantID, booking.VariantID).Return(variant, nil).Once()
	suite.mockVariantRepo.On("UpdateAvailable", mock.Anything, suite.tenantID, variant.ID, 1).Return(nil).Once()
	suite.expectNotification()
	suite.expectStatusEmail(&mailer.Result{Success: true})

	_, _, err := suite.service.Confirm(context.Background(), suite.adminSession, booking.ID)

	assert.NoError(suite.T(), err)
	events := suite.mockBroker.publishedEvents(changes.EntityBookings)
	assert.Len(suite.T(), events, 1)
	assert.Equal(suite.T(), changes.ActionUpdated, events[0].Action)
	assert.Equal(suite.T(), booking.ID, events[0].ID)
	assert.Equal(suite.T(), suite.tenantID, events[0].TenantID)
}

func (suite *BookingServiceTestSuite) TestListByStatus_FiltersForAdmin() {
	pending := []*models.Booking{suite.pendingBooking()}
	suite.mockBookingRepo.On("ListByStatus", mock.Anything, suite.tenantID, models.BookingStatusPending, 50, 0).Return(pending, nil).Once()

	bookings, err := suite.service.ListByStatus(context.Background(), suite.adminSession, models.BookingStatusPending, 0, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bookings, 1)
}

func (suite *BookingServiceTestSuite) TestListByStatus_DriverScopedToAssignments() {
	driverID := uuid.New()
	sess := common.Session{UserID: driverID, TenantID: suite.tenantID, Role: models.RoleDriver}

	ongoing := suite.pendingBooking()
	ongoing.Status = models.BookingStatusOngoing
	ongoing.AssignedDriverID = &driverID
	confirmed := suite.pendingBooking()
	confirmed.Status = models.BookingStatusConfirmed
	confirmed.AssignedDriverID = &driverID
	suite.mockBookingRepo.On("ListByDriver", mock.Anything, suite.tenantID, driverID, 50, 0).
		Return([]*models.Booking{ongoing, confirmed}, nil).Once()

	bookings, err := suite.service.ListByStatus(context.Background(), sess, models.BookingStatusOngoing, 0, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), bookings, 1)
	assert.Equal(suite.T(), ongoing.ID, bookings[0].ID)
}

func (suite *BookingServiceTestSuite) TestListByStatus_RejectsUnknownStatus() {
	bookings, err := suite.service.ListByStatus(context.Background(), suite.adminSession, "parked", 0, 0)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
	assert.Nil(suite.T(), bookings)
}

func (suite *BookingServiceTestSuite) TestConfirm_OnlyPending() {
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusCompleted

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	_, _, err := suite.service.Confirm(context.Background(), suite.adminSession, booking.ID)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestDecline_RequiresReason() {
	_, _, err := suite.service.Decline(context.Background(), suite.adminSession, uuid.New(), "")

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestDecline_RecordsReason() {
	booking := suite.pendingBooking()

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()
	suite.expectNotification()
	suite.expectStatusEmail(&mailer.Result{Success: true})

	got, _, err := suite.service.Decline(context.Background(), suite.adminSession, booking.ID, "vehicle unavailable")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusDeclined, got.Status)
	assert.Equal(suite.T(), "vehicle unavailable", *got.DeclineReason)
}

func (suite *BookingServiceTestSuite) TestCancel_ConfirmedReleasesVariant() {
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusConfirmed
	variant := &models.VehicleVariant{
		ID:                booking.VariantID,
		TenantID:          suite.tenantID,
		TotalQuantity:     2,
		AvailableQuantity: 1,
	}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()
	suite.mockVariantRepo.On("GetByID", mock.Anything, suite.tenantID, booking.VariantID).Return(variant, nil).Once()
	suite.mockVariantRepo.On("UpdateAvailable", mock.Anything, suite.tenantID, variant.ID, 2).Return(nil).Once()
	suite.expectNotification()
	suite.expectStatusEmail(&mailer.Result{Success: true})

	got, _, err := suite.service.Cancel(context.Background(), suite.adminSession, booking.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusCancelled, got.Status)
}

func (suite *BookingServiceTestSuite) TestCancel_CompletedRejected() {
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusCompleted

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	_, _, err := suite.service.Cancel(context.Background(), suite.adminSession, booking.ID)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestAssignDriver_RejectsNonDriver() {
	booking := suite.pendingBooking()
	adminID := uuid.New()
	admin := &models.AppUser{ID: adminID, Role: models.RoleAdmin, Status: models.UserStatusActive}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockUserRepo.On("GetByID", mock.Anything, suite.tenantID, adminID).Return(admin, nil).Once()

	_, err := suite.service.AssignDriver(context.Background(), suite.adminSession, booking.ID, adminID)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestAssignDriver_RejectsDisabledDriver() {
	booking := suite.pendingBooking()
	driverID := uuid.New()
	driver := &models.AppUser{ID: driverID, Role: models.RoleDriver, Status: models.UserStatusDisabled}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockUserRepo.On("GetByID", mock.Anything, suite.tenantID, driverID).Return(driver, nil).Once()

	_, err := suite.service.AssignDriver(context.Background(), suite.adminSession, booking.ID, driverID)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestStartTrip_OnlyConfirmed() {
	booking := suite.pendingBooking()

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	_, err := suite.service.StartTrip(context.Background(), suite.adminSession, booking.ID, 45, 1000)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestStartTrip_RecordsFuelAndPayment() {
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusConfirmed

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()

	got, err := suite.service.StartTrip(context.Background(), suite.adminSession, booking.ID, 45, 1000)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusOngoing, got.Status)
	assert.Equal(suite.T(), 45.0, *got.StartFuel)
	assert.Equal(suite.T(), 1000.0, *got.PaymentAtStart)
}

func (suite *BookingServiceTestSuite) TestCompleteTrip_PersistsSettlement() {
	startFuel := 45.0
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusOngoing
	booking.StartFuel = &startFuel
	// Returned two hours late.
	booking.RentalEnd = time.Now().Add(-2 * time.Hour)
	variant := &models.VehicleVariant{
		ID:                booking.VariantID,
		TenantID:          suite.tenantID,
		TotalQuantity:     2,
		AvailableQuantity: 1,
	}

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()
	suite.mockSettingsSvc.On("Get", mock.Anything, suite.tenantID).Return(&models.SystemSettings{
		TenantID:          suite.tenantID,
		FuelPricePerLiter: 65,
		DelayFeePerHour:   100,
	}, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, booking).Return(nil).Once()
	suite.mockVariantRepo.On("GetByID", mock.Anything, suite.tenantID, booking.VariantID).Return(variant, nil).Once()
	suite.mockVariantRepo.On("UpdateAvailable", mock.Anything, suite.tenantID, variant.ID, 2).Return(nil).Once()
	suite.expectNotification()
	suite.mockCache.On("InvalidateNetBalance", mock.Anything, suite.tenantID).Return(nil).Once()

	got, err := suite.service.CompleteTrip(context.Background(), suite.adminSession, booking.ID, 30, 500)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusCompleted, got.Status)
	// 15 litres short at 65/litre.
	assert.Equal(suite.T(), 975.0, *got.FuelCharge)
	assert.InDelta(suite.T(), 200.0, *got.DelayFee, 1.0)
	assert.InDelta(suite.T(), 2.0, *got.DelayHours, 0.01)
	assert.Equal(suite.T(), 30.0, *got.EndFuel)
	assert.Equal(suite.T(), 500.0, *got.PaymentAtEnd)
}

func (suite *BookingServiceTestSuite) TestCompleteTrip_OnlyOngoing() {
	booking := suite.pendingBooking()
	booking.Status = models.BookingStatusConfirmed

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, booking.ID).Return(booking, nil).Once()

	_, err := suite.service.CompleteTrip(context.Background(), suite.adminSession, booking.ID, 30, 500)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *BookingServiceTestSuite) TestUpdate_PreservesStatusAndSettlement() {
	fuelCharge := 975.0
	current := suite.pendingBooking()
	current.Status = models.BookingStatusCompleted
	current.FuelCharge = &fuelCharge

	edited := *current
	edited.Status = models.BookingStatusPending
	edited.FuelCharge = nil
	edited.CustomerName = "Maria S. Santos"

	suite.mockBookingRepo.On("GetByID", mock.Anything, suite.tenantID, current.ID).Return(current, nil).Once()
	suite.mockBookingRepo.On("Update", mock.Anything, &edited).Return(nil).Once()

	err := suite.service.Update(context.Background(), suite.adminSession, &edited)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.BookingStatusCompleted, edited.Status)
	assert.Equal(suite.T(), 975.0, *edited.FuelCharge)
}
