package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type VariantHandlers struct {
	variantService services.VariantService
}

func NewVariantHandlers(variantService services.VariantService) *VariantHandlers {
	return &VariantHandlers{variantService: variantService}
}

type VariantRequest struct {
	VehicleID         string `json:"vehicle_id"`
	Color             string `json:"color"`
	TotalQuantity     int    `json:"total_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
}

func (h *VariantHandlers) CreateVariant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	vehicleID, err := common.ValidateUUID(req.VehicleID, "vehicle_id")
	if err != nil {
		return common.HTTPError(err)
	}

	variant := &models.VehicleVariant{
		VehicleID:         vehicleID,
		Color:             req.Color,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.variantService.Create(ctx, sess.TenantID, variant); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, variant)
}

func (h *VariantHandlers) GetVariant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return common.HTTPError(err)
	}

	variant, err := h.variantService.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, variant)
}

func (h *VariantHandlers) UpdateVariant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req VariantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	current, err := h.variantService.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}

	variant := &models.VehicleVariant{
		ID:                id,
		VehicleID:         current.VehicleID,
		Color:             req.Color,
		TotalQuantity:     req.TotalQuantity,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.variantService.Update(ctx, sess.TenantID, variant); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, variant)
}

func (h *VariantHandlers) DeleteVariant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.variantService.Delete(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// AdjustQuantity shifts availability by a signed delta. The result is
// clamped, never an error, when the delta overshoots either bound.
func (h *VariantHandlers) AdjustQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "variant id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req AdjustQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	variant, err := h.variantService.AdjustQuantity(ctx, sess.TenantID, id, req.Delta)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, variant)
}
