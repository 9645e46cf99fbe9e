package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type TenantHandlers struct {
	tenantService services.TenantService
}

func NewTenantHandlers(tenantService services.TenantService) *TenantHandlers {
	return &TenantHandlers{tenantService: tenantService}
}

func (h *TenantHandlers) GetTenant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	tenant, err := h.tenantService.Get(ctx, sess)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tenant)
}

type UpdateTenantRequest struct {
	BusinessName string  `json:"business_name"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Status       string  `json:"status"`
}

func (h *TenantHandlers) UpdateTenant(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req UpdateTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tenant := &models.Tenant{
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Status:       req.Status,
	}
	if tenant.Status == "" {
		tenant.Status = models.UserStatusActive
	}
	if err := h.tenantService.Update(ctx, sess, tenant); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, tenant)
}
