package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type VehicleHandlers struct {
	vehicleService services.VehicleService
	variantService services.VariantService
}

func NewVehicleHandlers(vehicleService services.VehicleService, variantService services.VariantService) *VehicleHandlers {
	return &VehicleHandlers{
		vehicleService: vehicleService,
		variantService: variantService,
	}
}

type ListVehiclesRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *VehicleHandlers) ListVehicles(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req ListVehiclesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	vehicles, err := h.vehicleService.List(ctx, sess.TenantID, req.Limit, req.Offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"vehicles": vehicles,
	})
}

type VehicleRequest struct {
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Description *string `json:"description"`
	DailyRate   float64 `json:"daily_rate"`
}

func (h *VehicleHandlers) CreateVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	vehicle := &models.Vehicle{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		DailyRate:   req.DailyRate,
	}
	if err := h.vehicleService.Create(ctx, sess.TenantID, vehicle); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandlers) GetVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	vehicle, err := h.vehicleService.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandlers) UpdateVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	vehicle := &models.Vehicle{
		ID:          id,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Description: req.Description,
		DailyRate:   req.DailyRate,
	}
	if err := h.vehicleService.Update(ctx, sess.TenantID, vehicle); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes the vehicle and its variants in one shot.
func (h *VehicleHandlers) DeleteVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.vehicleService.Delete(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *VehicleHandlers) UploadVehicleImage(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read image file")
	}
	defer src.Close()

	vehicle, err := h.vehicleService.UploadImage(ctx, sess.TenantID, id, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandlers) ListVariants(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	vehicleID, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	variants, err := h.variantService.ListByVehicle(ctx, sess.TenantID, vehicleID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"variants": variants,
	})
}
