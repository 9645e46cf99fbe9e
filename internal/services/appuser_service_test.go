package services

import (
	"context"
	"testing"

	"fleetrent/internal/common"
	"fleetrent/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AppUserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockAppUserRepository
	mockTenantRepo *MockTenantRepository
	mockCache      *MockCacheService
	mockBroker     *MockBroker
	service        AppUserService
	tenantID       uuid.UUID
	ownerSession   common.Session
}

func (suite *AppUserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = &MockAppUserRepository{}
	suite.mockTenantRepo = &MockTenantRepository{}
	suite.mockCache = &MockCacheService{}
	suite.mockBroker = &MockBroker{}
	suite.mockBroker.On("Publish", mock.Anything, mock.AnythingOfType("changes.Event")).Return(nil).Maybe()
	suite.service = NewAppUserService(suite.mockUserRepo, suite.mockTenantRepo, suite.mockCache, suite.mockBroker)
	suite.tenantID = uuid.New()
	suite.ownerSession = common.Session{
		UserID:   suite.tenantID,
		TenantID: suite.tenantID,
		Role:     models.RoleOwner,
	}
}

func (suite *AppUserServiceTestSuite) TearDownTest() {
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockTenantRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockBroker.AssertExpectations(suite.T())
}

func TestAppUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AppUserServiceTestSuite))
}

func (suite *AppUserServiceTestSuite) TestCreate_Success() {
	user := &models.AppUser{
		FullName: "Jun Reyes",
		Email:    "jun@example.com",
		Role:     models.RoleDriver,
	}

	suite.mockUserRepo.On("Create", mock.Anything, user).Return(nil).Once()

	err := suite.service.Create(context.Background(), suite.ownerSession, user, "secret123")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenantID, user.OwnerUID)
	assert.Equal(suite.T(), models.UserStatusActive, user.Status)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func (suite *AppUserServiceTestSuite) TestCreate_NonOwnerRejected() {
	sess := common.Session{UserID: uuid.New(), TenantID: suite.tenantID, Role: models.RoleAdmin}
	user := &models.AppUser{
		FullName: "Jun Reyes",
		Email:    "jun@example.com",
		Role:     models.RoleDriver,
	}

	err := suite.service.Create(context.Background(), sess, user, "secret123")

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *AppUserServiceTestSuite) TestCreate_InvalidRole() {
	user := &models.AppUser{
		FullName: "Jun Reyes",
		Email:    "jun@example.com",
		Role:     "superuser",
	}

	err := suite.service.Create(context.Background(), suite.ownerSession, user, "secret123")

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *AppUserServiceTestSuite) TestRegisterOwner_BootstrapsTenant() {
	user := &models.AppUser{
		FullName: "Ana Cruz",
		Email:    "ana@example.com",
	}

	suite.mockUserRepo.On("Create", mock.Anything, user).Return(nil).Once()
	suite.mockTenantRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tenant")).Return(nil).Once()

	err := suite.service.RegisterOwner(context.Background(), user, "Cruz Rentals", "secret123")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, user.OwnerUID)
	assert.Equal(suite.T(), models.RoleOwner, user.Role)

	tenant := suite.mockTenantRepo.Calls[0].Arguments.Get(1).(*models.Tenant)
	assert.Equal(suite.T(), user.ID, tenant.ID)
	assert.Equal(suite.T(), "Cruz Rentals", tenant.BusinessName)
	assert.Equal(suite.T(), user.Email, tenant.ContactEmail)
}

func (suite *AppUserServiceTestSuite) TestRegisterOwner_BusinessNameRequired() {
	user := &models.AppUser{
		FullName: "Ana Cruz",
		Email:    "ana@example.com",
	}

	err := suite.service.RegisterOwner(context.Background(), user, "", "secret123")

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *AppUserServiceTestSuite) TestUpdate_InvalidatesSessionCache() {
	userID := uuid.New()
	user := &models.AppUser{
		ID:       userID,
		FullName: "Jun Reyes",
		Status:   models.UserStatusDisabled,
	}

	suite.mockUserRepo.On("GetByID", mock.Anything, suite.tenantID, userID).Return(&models.AppUser{ID: userID}, nil).Once()
	suite.mockUserRepo.On("Update", mock.Anything, user).Return(nil).Once()
	suite.mockCache.On("DeleteSessionUser", mock.Anything, userID).Return(nil).Once()

	err := suite.service.Update(context.Background(), suite.ownerSession, user)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenantID, user.OwnerUID)
}

func (suite *AppUserServiceTestSuite) TestDelete_SelfDeleteBlocked() {
	err := suite.service.Delete(context.Background(), suite.ownerSession, suite.ownerSession.UserID)

	assert.ErrorIs(suite.T(), err, common.ErrInvalidArgument)
}

func (suite *AppUserServiceTestSuite) TestDelete_Success() {
	userID := uuid.New()

	suite.mockUserRepo.On("GetByID", mock.Anything, suite.tenantID, userID).Return(&models.AppUser{ID: userID}, nil).Once()
	suite.mockUserRepo.On("Delete", mock.Anything, suite.tenantID, userID).Return(nil).Once()
	suite.mockCache.On("DeleteSessionUser", mock.Anything, userID).Return(nil).Once()

	err := suite.service.Delete(context.Background(), suite.ownerSession, userID)

	assert.NoError(suite.T(), err)
}
