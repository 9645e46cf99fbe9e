package handlers

import (
	"fmt"
	"log"
	"net/http"

	"fleetrent/internal/common"
	"fleetrent/internal/mailer"
	"fleetrent/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PublicHandlers serves the customer-facing booking site. The tenant is
// pinned by the OWNER_ID deployment setting; no authentication.
type PublicHandlers struct {
	pinnedOwnerID  uuid.UUID
	vehicleService services.VehicleService
	variantService services.VariantService
	websiteService services.WebsiteService
	bookingService services.BookingService
	mail           mailer.Mailer
}

func NewPublicHandlers(
	pinnedOwnerID uuid.UUID,
	vehicleService services.VehicleService,
	variantService services.VariantService,
	websiteService services.WebsiteService,
	bookingService services.BookingService,
	mail mailer.Mailer,
) *PublicHandlers {
	return &PublicHandlers{
		pinnedOwnerID:  pinnedOwnerID,
		vehicleService: vehicleService,
		variantService: variantService,
		websiteService: websiteService,
		bookingService: bookingService,
		mail:           mail,
	}
}

func (h *PublicHandlers) tenant() (uuid.UUID, error) {
	if h.pinnedOwnerID == uuid.Nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusServiceUnavailable, "public site is not configured")
	}
	return h.pinnedOwnerID, nil
}

type publicListRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *PublicHandlers) ListVehicles(c echo.Context) error {
	tenantID, err := h.tenant()
	if err != nil {
		return err
	}

	var req publicListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	ctx := c.Request().Context()
	vehicles, err := h.vehicleService.List(ctx, tenantID, req.Limit, req.Offset)
	if err != nil {
		return common.HTTPError(err)
	}

	type publicVehicle struct {
		Vehicle  interface{} `json:"vehicle"`
		Variants interface{} `json:"variants"`
	}
	out := make([]publicVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		variants, err := h.variantService.ListByVehicle(ctx, tenantID, v.ID)
		if err != nil {
			return common.HTTPError(err)
		}
		out = append(out, publicVehicle{Vehicle: v, Variants: variants})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"vehicles": out,
	})
}

func (h *PublicHandlers) GetVehicle(c echo.Context) error {
	tenantID, err := h.tenant()
	if err != nil {
		return err
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.HTTPError(err)
	}

	ctx := c.Request().Context()
	vehicle, err := h.vehicleService.GetByID(ctx, tenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}
	variants, err := h.variantService.ListByVehicle(ctx, tenantID, id)
	if err != nil {
		return common.HTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"vehicle":  vehicle,
		"variants": variants,
	})
}

func (h *PublicHandlers) GetContent(c echo.Context) error {
	tenantID, err := h.tenant()
	if err != nil {
		return err
	}

	content, err := h.websiteService.GetContent(c.Request().Context(), tenantID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, content)
}

func (h *PublicHandlers) ListGallery(c echo.Context) error {
	tenantID, err := h.tenant()
	if err != nil {
		return err
	}

	images, err := h.websiteService.ListGallery(c.Request().Context(), tenantID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"images": images,
	})
}

// CreateBooking takes a customer booking request and sends the
// confirmation email. The booking lands pending; an email failure does
// not undo it.
func (h *PublicHandlers) CreateBooking(c echo.Context) error {
	tenantID, err := h.tenant()
	if err != nil {
		return err
	}

	booking, bindErr := bindBooking(c)
	if bindErr != nil {
		return bindErr
	}

	ctx := c.Request().Context()
	if err := h.bookingService.Create(ctx, tenantID, booking); err != nil {
		return common.HTTPError(err)
	}

	email := &mailer.BookingConfirmationEmail{
		CustomerEmail:  booking.CustomerEmail,
		CustomerName:   booking.CustomerName,
		BookingID:      booking.ID.String(),
		Vehicle:        h.vehicleDescriptor(c, tenantID, booking.VehicleID),
		RentalStart:    booking.RentalStart.Format("2006-01-02"),
		RentalEnd:      booking.RentalEnd.Format("2006-01-02"),
		PickupLocation: common.SafeString(booking.PickupLocation),
		TotalPrice:     booking.TotalPrice,
	}
	emailResult, err := h.mail.SendBookingConfirmation(ctx, email)
	if err != nil {
		log.Printf("Confirmation email for booking %s failed: %v", booking.ID, err)
		emailResult = &mailer.Result{Success: false, Error: err.Error()}
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"booking": booking,
		"email":   emailResult,
	})
}

func (h *PublicHandlers) vehicleDescriptor(c echo.Context, tenantID, vehicleID uuid.UUID) string {
	vehicle, err := h.vehicleService.GetByID(c.Request().Context(), tenantID, vehicleID)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s %s %d", vehicle.Make, vehicle.Model, vehicle.Year)
}
