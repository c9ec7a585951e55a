package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/travelfront/internal/handoff"
	"github.com/dharmasatrya/travelfront/internal/models"
	"github.com/dharmasatrya/travelfront/pkg/logger"
)

type HandoffHandler struct {
	store handoff.Store
	log   logger.Logger
}

func NewHandoffHandler(store handoff.Store, log logger.Logger) *HandoffHandler {
	return &HandoffHandler{store: store, log: log}
}

type saveHandoffRequest struct {
	FlightID  string               `json:"flight_id" validate:"required"`
	Passenger models.PassengerForm `json:"passenger"`
}

type saveHandoffResponse struct {
	Token string `json:"token"`
}

// Save parks pending form data before an auth redirect and hands back the
// resume token for the return URL.
func (h *HandoffHandler) Save(c echo.Context) error {
	var req saveHandoffRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Failed to parse request body: "+err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	token, err := h.store.Save(c.Request().Context(), handoff.Pending{
		FlightID:  req.FlightID,
		Passenger: req.Passenger,
	})
	if err != nil {
		h.log.Error("handoff save failed", "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "handoff_error",
			Message: "Failed to save pending booking",
			Code:    http.StatusInternalServerError,
		})
	}

	return c.JSON(http.StatusCreated, saveHandoffResponse{Token: token})
}

// Resume returns the pending form once; the token is consumed on first use.
func (h *HandoffHandler) Resume(c echo.Context) error {
	token := c.Param("token")

	pending, found, err := h.store.Resume(c.Request().Context(), token)
	if err != nil {
		h.log.Error("handoff resume failed", "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "handoff_error",
			Message: "Failed to resume pending booking",
			Code:    http.StatusInternalServerError,
		})
	}
	if !found {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Unknown or expired resume token",
			Code:    http.StatusNotFound,
		})
	}

	return c.JSON(http.StatusOK, pending)
}
