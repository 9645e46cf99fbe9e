package handlers

import (
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles login, logout and password management.
type AuthHandlers struct {
	authService    services.AuthService
	appUserService services.AppUserService
}

func NewAuthHandlers(authService services.AuthService, appUserService services.AppUserService) *AuthHandlers {
	return &AuthHandlers{
		authService:    authService,
		appUserService: appUserService,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, tokens)
}

type RegisterOwnerRequest struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	ContactNumber *string `json:"contact_number"`
	BusinessName  string  `json:"business_name"`
	Password      string  `json:"password"`
}

// RegisterOwner creates a new tenant: the signing-up account becomes
// its own owner.
func (h *AuthHandlers) RegisterOwner(c echo.Context) error {
	var req RegisterOwnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user := &models.AppUser{
		FullName:      req.FullName,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
	}
	if err := h.appUserService.RegisterOwner(c.Request().Context(), user, req.BusinessName, req.Password); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, tokens)
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.authService.Logout(ctx, sess.UserID, req.RefreshToken); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's own account with the resolved session.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	user, err := h.appUserService.GetByID(ctx, sess, sess.UserID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"user":    user,
		"session": sess,
	})
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandlers) RequestPasswordReset(c echo.Context) error {
	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if _, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return common.HTTPError(err)
	}
	// Same response whether or not the email is registered.
	return c.JSON(http.StatusOK, map[string]string{"message": "If the email is registered, a reset link has been sent"})
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.ResetToken, req.NewPassword); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandlers) UpdatePassword(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.authService.UpdatePassword(ctx, sess.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}
