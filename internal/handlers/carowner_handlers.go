package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type CarOwnerHandlers struct {
	carOwnerService services.CarOwnerService
}

func NewCarOwnerHandlers(carOwnerService services.CarOwnerService) *CarOwnerHandlers {
	return &CarOwnerHandlers{carOwnerService: carOwnerService}
}

type ListCarOwnersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *CarOwnerHandlers) ListCarOwners(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req ListCarOwnersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	carOwners, err := h.carOwnerService.List(ctx, sess.TenantID, req.Limit, req.Offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"car_owners": carOwners,
	})
}

type CarOwnerRequest struct {
	FullName      string  `json:"full_name"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
}

func (h *CarOwnerHandlers) CreateCarOwner(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req CarOwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	carOwner := &models.CarOwner{
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := h.carOwnerService.Create(ctx, sess.TenantID, carOwner); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, carOwner)
}

func (h *CarOwnerHandlers) GetCarOwner(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "car owner id")
	if err != nil {
		return common.HTTPError(err)
	}

	carOwner, err := h.carOwnerService.GetByID(ctx, sess.TenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, carOwner)
}

func (h *CarOwnerHandlers) UpdateCarOwner(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "car owner id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req CarOwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	carOwner := &models.CarOwner{
		ID:            id,
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if err := h.carOwnerService.Update(ctx, sess.TenantID, carOwner); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, carOwner)
}

func (h *CarOwnerHandlers) DeleteCarOwner(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "car owner id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.carOwnerService.Delete(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CarOwnerHandlers) UploadGovernmentID(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "car owner id")
	if err != nil {
		return common.HTTPError(err)
	}

	file, err := c.FormFile("document")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "document file is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read document file")
	}
	defer src.Close()

	carOwner, err := h.carOwnerService.UploadGovernmentID(ctx, sess.TenantID, id, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, carOwner)
}
