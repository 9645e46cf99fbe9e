package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fleetrent/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) Create(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	return m.Called(ctx, tenantID, vehicle).Error(0)
}

func (m *MockVehicleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) Update(ctx context.Context, tenantID uuid.UUID, vehicle *models.Vehicle) error {
	return m.Called(ctx, tenantID, vehicle).Error(0)
}

func (m *MockVehicleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockVehicleService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleService) UploadImage(ctx context.Context, tenantID, id uuid.UUID, fileName string, reader io.Reader, size int64, contentType string) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, id, fileName, reader, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

type MockVariantService struct {
	mock.Mock
}

func (m *MockVariantService) Create(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error {
	return m.Called(ctx, tenantID, variant).Error(0)
}

func (m *MockVariantService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleVariant), args.Error(1)
}

func (m *MockVariantService) Update(ctx context.Context, tenantID uuid.UUID, variant *models.VehicleVariant) error {
	return m.Called(ctx, tenantID, variant).Error(0)
}

func (m *MockVariantService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockVariantService) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Get(0).([]*models.VehicleVariant), args.Error(1)
}

func (m *MockVariantService) AdjustQuantity(ctx context.Context, tenantID, id uuid.UUID, delta int) (*models.VehicleVariant, error) {
	args := m.Called(ctx, tenantID, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleVariant), args.Error(1)
}

func TestPublicListVehicles_PassesPaginationThrough(t *testing.T) {
	tenantID := uuid.New()
	vehicleSvc := &MockVehicleService{}
	variantSvc := &MockVariantService{}
	h := NewPublicHandlers(tenantID, vehicleSvc, variantSvc, nil, nil, nil)

	vehicle := &models.Vehicle{ID: uuid.New(), TenantID: tenantID, Make: "Toyota", Model: "Vios", Year: 2022}
	vehicleSvc.On("List", mock.Anything, tenantID, 2, 4).Return([]*models.Vehicle{vehicle}, nil).Once()
	variantSvc.On("ListByVehicle", mock.Anything, tenantID, vehicle.ID).Return([]*models.VehicleVariant{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/public/vehicles?limit=2&offset=4", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	err := h.ListVehicles(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Toyota")
	vehicleSvc.AssertExpectations(t)
	variantSvc.AssertExpectations(t)
}

func TestPublicListVehicles_UnconfiguredSiteUnavailable(t *testing.T) {
	h := NewPublicHandlers(uuid.Nil, &MockVehicleService{}, &MockVariantService{}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/public/vehicles", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	err := h.ListVehicles(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
}
