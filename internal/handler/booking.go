package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelfront/internal/booking"
	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/internal/wizard"
	"github.com/dharmasatrya/travelfront/pkg/logger"
	"github.com/dharmasatrya/travelfront/pkg/metrics"
)

type BookingHandler struct {
	client *booking.Client
	log    logger.Logger
}

func NewBookingHandler(client *booking.Client, log logger.Logger) *BookingHandler {
	return &BookingHandler{client: client, log: log}
}

type bookingRequest struct {
	FlightID  string               `json:"flight_id" validate:"required"`
	Passenger models.PassengerForm `json:"passenger"`
	Payment   models.PaymentForm   `json:"payment"`
}

// CreateBooking runs the wizard server-side in one shot: passenger details
// must validate before payment is attempted, and a rejected submission keeps
// the booking unconfirmed.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	ctrl := wizard.NewController(req.FlightID, h.client)

	if !ctrl.SubmitDetails(req.Passenger) {
		metrics.BookingsSubmitted.WithLabelValues("flight", "validation_error").Inc()
		return c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{
			Error:  "validation_error",
			Fields: ctrl.FieldErrors(),
		})
	}

	confirmation, err := ctrl.ConfirmPayment(c.Request().Context(), req.Payment)
	if err != nil {
		return h.submissionFailed(c, "flight", err)
	}

	metrics.BookingsSubmitted.WithLabelValues("flight", "ok").Inc()
	return c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) CreateHolidayBooking(c echo.Context) error {
	var req models.HolidayBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	confirmation, err := h.client.SubmitHolidayBooking(c.Request().Context(), req)
	if err != nil {
		return h.submissionFailed(c, "holiday", err)
	}

	metrics.BookingsSubmitted.WithLabelValues("holiday", "ok").Inc()
	return c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) CreateVisaApplication(c echo.Context) error {
	var req models.VisaApplicationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	confirmation, err := h.client.SubmitVisaApplication(c.Request().Context(), req)
	if err != nil {
		return h.submissionFailed(c, "visa", err)
	}

	metrics.BookingsSubmitted.WithLabelValues("visa", "ok").Inc()
	return c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) CreatePackageRequest(c echo.Context) error {
	var req models.PackageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	confirmation, err := h.client.SubmitPackageRequest(c.Request().Context(), req)
	if err != nil {
		return h.submissionFailed(c, "package", err)
	}

	metrics.BookingsSubmitted.WithLabelValues("package", "ok").Inc()
	return c.JSON(http.StatusCreated, confirmation)
}

func (h *BookingHandler) submissionFailed(c echo.Context, kind string, err error) error {
	metrics.BookingsSubmitted.WithLabelValues(kind, "submission_error").Inc()
	h.log.Error("booking submission rejected", "kind", kind, "error", err)

	var subErr *booking.SubmissionError
	if errors.As(err, &subErr) && len(subErr.Fields) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, models.FieldErrorResponse{
			Error:  "submission_error",
			Fields: subErr.Fields,
		})
	}

	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:   "submission_error",
		Message: err.Error(),
		Code:    http.StatusBadGateway,
	})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
		Code:    http.StatusBadRequest,
	})
}
