package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type NotificationHandlers struct {
	notificationService services.NotificationService
}

func NewNotificationHandlers(notificationService services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

type ListNotificationsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *NotificationHandlers) ListNotifications(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req ListNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	notifications, err := h.notificationService.List(ctx, sess.TenantID, req.Limit, req.Offset)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "notification id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.notificationService.MarkRead(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandlers) Dismiss(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "notification id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.notificationService.Dismiss(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
