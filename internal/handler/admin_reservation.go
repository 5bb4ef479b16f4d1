package handler

// Admin reservation endpoints live on their own handler because their
// validation policy differs from the self-service one: the user cancel
// enforces the status graph, the admin update does not. Keeping the two
// entry points separate preserves that asymmetry instead of collapsing
// them into one generic update.

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/model"
	"github.com/rosaleda/pasteleria-api/internal/repository"
)

// AdminReservationHandler exposes the privileged reservation operations.
// Routes using it must be guarded with RequireRole(model.RoleAdmin).
type AdminReservationHandler struct {
	Reservations *repository.ReservationRepo
}

// NewAdminReservationHandler constructs an AdminReservationHandler and
// panics if the repository is nil.
func NewAdminReservationHandler(reservations *repository.ReservationRepo) *AdminReservationHandler {
	if reservations == nil {
		panic("nil repository passed to NewAdminReservationHandler")
	}
	return &AdminReservationHandler{Reservations: reservations}
}

// ListAll handles GET /v1/reservations/all: every reservation of every
// user, flattened per line item, with the owner's name and phone, sorted
// by deadline descending.
func (h *AdminReservationHandler) ListAll(c echo.Context) error {
	rows, err := h.Reservations.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservations"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Update handles PUT /v1/reservations/:reservationId. Status and
// deadline are both optional; whichever is present is applied. The
// status value must be one of the known enum values, but no transition
// check is made: an administrator may move a reservation to any status,
// including straight from pendiente to finalizado.
func (h *AdminReservationHandler) Update(c echo.Context) error {
	reservationID, err := pathID(c, "reservationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var body struct {
		Status   *string `json:"status"`
		Deadline *string `json:"deadline"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status == nil && body.Deadline == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status or deadline is required"})
	}
	if body.Status != nil && !model.ValidStatus(*body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	var deadline *time.Time
	if body.Deadline != nil {
		t, err := parseDeadline(*body.Deadline)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deadline"})
		}
		deadline = &t
	}
	if err := h.Reservations.AdminUpdate(c.Request().Context(), reservationID, body.Status, deadline); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation updated"})
}
