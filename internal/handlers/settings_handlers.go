package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	settings, err := h.settingsService.Get(ctx, sess.TenantID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, settings)
}

type UpdateSettingsRequest struct {
	FuelPricePerLiter float64 `json:"fuel_price_per_liter"`
	DelayFeePerHour   float64 `json:"delay_fee_per_hour"`
}

func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	settings := &models.SystemSettings{
		FuelPricePerLiter: req.FuelPricePerLiter,
		DelayFeePerHour:   req.DelayFeePerHour,
	}
	if err := h.settingsService.Update(ctx, sess.TenantID, settings); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, settings)
}
