package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

type WebsiteHandlers struct {
	websiteService services.WebsiteService
}

func NewWebsiteHandlers(websiteService services.WebsiteService) *WebsiteHandlers {
	return &WebsiteHandlers{websiteService: websiteService}
}

func (h *WebsiteHandlers) GetContent(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	content, err := h.websiteService.GetContent(ctx, sess.TenantID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, content)
}

type WebsiteContentRequest struct {
	HeroTitle    string  `json:"hero_title"`
	HeroSubtitle *string `json:"hero_subtitle"`
	AboutText    *string `json:"about_text"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

func (h *WebsiteHandlers) UpdateContent(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req WebsiteContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	content := &models.WebsiteContent{
		HeroTitle:    req.HeroTitle,
		HeroSubtitle: req.HeroSubtitle,
		AboutText:    req.AboutText,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := h.websiteService.UpdateContent(ctx, sess.TenantID, content); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, content)
}

func (h *WebsiteHandlers) ListGallery(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	images, err := h.websiteService.ListGallery(ctx, sess.TenantID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": images,
	})
}

func (h *WebsiteHandlers) AddGalleryImage(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
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

	var caption *string
	if v := c.FormValue("caption"); v != "" {
		caption = &v
	}

	image, err := h.websiteService.AddGalleryImage(ctx, sess.TenantID, caption, file.Filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, image)
}

func (h *WebsiteHandlers) DeleteGalleryImage(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "image id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.websiteService.DeleteGalleryImage(ctx, sess.TenantID, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
