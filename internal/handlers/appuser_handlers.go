package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

// AppUserHandlers manages staff accounts; all mutating routes are
// owner-only at the route level, and the service enforces it again.
type AppUserHandlers struct {
	appUserService services.AppUserService
}

func NewAppUserHandlers(appUserService services.AppUserService) *AppUserHandlers {
	return &AppUserHandlers{appUserService: appUserService}
}

type ListAppUsersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *AppUserHandlers) ListAppUsers(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req ListAppUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	users, err := h.appUserService.List(ctx, sess, req.Limit, req.Offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

type CreateAppUserRequest struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	ContactNumber *string `json:"contact_number"`
	Role          string  `json:"role"`
	Password      string  `json:"password"`
}

func (h *AppUserHandlers) CreateAppUser(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req CreateAppUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user := &models.AppUser{
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Role:          req.Role,
	}
	if err := h.appUserService.Create(ctx, sess, user, req.Password); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AppUserHandlers) GetAppUser(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.HTTPError(err)
	}

	user, err := h.appUserService.GetByID(ctx, sess, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

type UpdateAppUserRequest struct {
	FullName      string  `json:"full_name"`
	ContactNumber *string `json:"contact_number"`
	Status        string  `json:"status"`
}

// UpdateAppUser changes name, contact and status. Role and owner are
// fixed at creation and not part of the request shape.
func (h *AppUserHandlers) UpdateAppUser(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req UpdateAppUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user := &models.AppUser{
		ID:            id,
		FullName:      req.FullName,
		ContactNumber: req.ContactNumber,
		Status:        req.Status,
	}
	if err := h.appUserService.Update(ctx, sess, user); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AppUserHandlers) DeleteAppUser(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "user id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.appUserService.Delete(ctx, sess, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
