package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"fleetrent/internal/common"
	"fleetrent/internal/models"
	"fleetrent/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
)

type BookingHandlers struct {
	bookingService services.BookingService
	vehicleService services.VehicleService
}

func NewBookingHandlers(bookingService services.BookingService, vehicleService services.VehicleService) *BookingHandlers {
	return &BookingHandlers{
		bookingService: bookingService,
		vehicleService: vehicleService,
	}
}

type ListBookingsRequest struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *BookingHandlers) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	var req ListBookingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	var bookings []*models.Booking
	if req.Status != "" {
		bookings, err = h.bookingService.ListByStatus(ctx, sess, req.Status, req.Limit, req.Offset)
	} else {
		bookings, err = h.bookingService.List(ctx, sess, req.Limit, req.Offset)
	}
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"bookings": bookings,
	})
}

type BookingRequest struct {
	VehicleID      string    `json:"vehicle_id"`
	VariantID      string    `json:"vehicle_variant_id"`
	CustomerName   string    `json:"customer_name"`
	CustomerEmail  string    `json:"customer_email"`
	CustomerPhone  *string   `json:"customer_phone"`
	PickupLocation *string   `json:"pickup_location"`
	RentalStart    time.Time `json:"rental_start_date"`
	RentalEnd      time.Time `json:"rental_end_date"`
	TotalPrice     float64   `json:"total_price"`
}

func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	booking, err := bindBooking(c)
	if err != nil {
		return err
	}

	if err := h.bookingService.Create(ctx, sess.TenantID, booking); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func bindBooking(c echo.Context) (*models.Booking, error) {
	var req BookingRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	vehicleID, err := common.ValidateUUID(req.VehicleID, "vehicle_id")
	if err != nil {
		return nil, common.HTTPError(err)
	}
	variantID, err := common.ValidateUUID(req.VariantID, "vehicle_variant_id")
	if err != nil {
		return nil, common.HTTPError(err)
	}

	return &models.Booking{
		VehicleID:      vehicleID,
		VariantID:      variantID,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		PickupLocation: req.PickupLocation,
		RentalStart:    req.RentalStart,
		RentalEnd:      req.RentalEnd,
		TotalPrice:     req.TotalPrice,
	}, nil
}

func (h *BookingHandlers) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, err := h.bookingService.GetByID(ctx, sess, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, bindErr := bindBooking(c)
	if bindErr != nil {
		return bindErr
	}
	booking.ID = id

	if err := h.bookingService.Update(ctx, sess, booking); err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	if err := h.bookingService.Delete(ctx, sess, id); err != nil {
		return common.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// statusResponse pairs the updated booking with the email dispatch
// outcome so the UI can show a send failure without blocking the
// transition.
func statusResponse(c echo.Context, booking *models.Booking, emailResult interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"booking": booking,
		"email":   emailResult,
	})
}

func (h *BookingHandlers) ConfirmBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, emailResult, err := h.bookingService.Confirm(ctx, sess, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return statusResponse(c, booking, emailResult)
}

type DeclineBookingRequest struct {
	Reason string `json:"decline_reason"`
}

func (h *BookingHandlers) DeclineBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req DeclineBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	booking, emailResult, err := h.bookingService.Decline(ctx, sess, id, req.Reason)
	if err != nil {
		return common.HTTPError(err)
	}
	return statusResponse(c, booking, emailResult)
}

func (h *BookingHandlers) CancelBooking(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, emailResult, err := h.bookingService.Cancel(ctx, sess, id)
	if err != nil {
		return common.HTTPError(err)
	}
	return statusResponse(c, booking, emailResult)
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

func (h *BookingHandlers) AssignDriver(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req AssignDriverRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	driverID, err := common.ValidateUUID(req.DriverID, "driver_id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, err := h.bookingService.AssignDriver(ctx, sess, id, driverID)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

type StartTripRequest struct {
	StartFuel      float64 `json:"start_fuel"`
	PaymentAtStart float64 `json:"payment_at_start"`
}

func (h *BookingHandlers) StartTrip(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req StartTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	booking, err := h.bookingService.StartTrip(ctx, sess, id, req.StartFuel, req.PaymentAtStart)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

type CompleteTripRequest struct {
	EndFuel      float64 `json:"end_fuel"`
	PaymentAtEnd float64 `json:"payment_at_end"`
}

func (h *BookingHandlers) CompleteTrip(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	var req CompleteTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	booking, err := h.bookingService.CompleteTrip(ctx, sess, id, req.EndFuel, req.PaymentAtEnd)
	if err != nil {
		return common.HTTPError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// SettlementReceipt renders the completed booking's settlement as a
// PDF.
func (h *BookingHandlers) SettlementReceipt(c echo.Context) error {
	ctx := c.Request().Context()
	sess, err := common.RequireSession(ctx)
	if err != nil {
		return common.HTTPError(err)
	}

	id, err := common.ValidateUUID(c.Param("id"), "booking id")
	if err != nil {
		return common.HTTPError(err)
	}

	booking, err := h.bookingService.GetByID(ctx, sess, id)
	if err != nil {
		return common.HTTPError(err)
	}
	if booking.Status != models.BookingStatusCompleted {
		return echo.NewHTTPError(http.StatusBadRequest, "receipt is only available for completed bookings")
	}

	pdfBytes, err := h.renderReceipt(ctx, sess, booking)
	if err != nil {
		return common.HTTPError(err)
	}

	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", booking.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *BookingHandlers) renderReceipt(ctx context.Context, sess common.Session, booking *models.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	marginX := 20.0
	marginY := 20.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.SetXY(marginX, marginY)
	pdf.Cell(0, 10, "RENTAL SETTLEMENT RECEIPT")
	pdf.Ln(15)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Booking: %s", booking.ID.String()))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Customer: %s", booking.CustomerName))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Rental Period: %s to %s",
		booking.RentalStart.Format("02-Jan-2006"), booking.RentalEnd.Format("02-Jan-2006")))
	pdf.Ln(8)

	if vehicle, err := h.vehicleService.GetByID(ctx, sess.TenantID, booking.VehicleID); err == nil {
		pdf.Cell(0, 8, fmt.Sprintf("Vehicle: %s %s %d", vehicle.Make, vehicle.Model, vehicle.Year))
		pdf.Ln(8)
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "CHARGES")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Rental Price: %.2f", booking.TotalPrice))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Fuel Charge: %.2f", common.SafeFloat64(booking.FuelCharge)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Delay Fee: %.2f (%.2f hours late)",
		common.SafeFloat64(booking.DelayFee), common.SafeFloat64(booking.DelayHours)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "PAYMENTS")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Paid at pickup: %.2f", common.SafeFloat64(booking.PaymentAtStart)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Paid at return: %.2f", common.SafeFloat64(booking.PaymentAtEnd)))
	pdf.Ln(10)

	net := common.SafeFloat64(booking.PaymentAtStart) + common.SafeFloat64(booking.PaymentAtEnd) -
		common.SafeFloat64(booking.FuelCharge) - common.SafeFloat64(booking.DelayFee)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", net))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
