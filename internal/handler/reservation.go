package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/model"
	"github.com/rosaleda/pasteleria-api/internal/queue"
	"github.com/rosaleda/pasteleria-api/internal/repository"
	queue_publisher "github.com/rosaleda/pasteleria-api/internal/service"
)

// ReservationHandler groups the repositories needed for the self-service
// reservation operations: create, cancel and the user-scoped views. All
// methods assume JWT authentication ran earlier in the chain; the
// privileged operations live on AdminReservationHandler instead, with a
// different validation policy.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Products     *repository.ProductRepo
}

// NewReservationHandler constructs a ReservationHandler with the provided
// repositories. All dependencies must be non-nil.
func NewReservationHandler(reservations *repository.ReservationRepo, products *repository.ProductRepo) *ReservationHandler {
	if reservations == nil || products == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Reservations: reservations, Products: products}
}

// deadline payloads accept RFC3339 or the plain DATETIME layout.
var deadlineLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseDeadline(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Create handles POST /v1/reservations/:productId. The body carries the
// amount and the deadline. The product is resolved first; header and
// line item are then written in one transaction, so a failure can never
// leave an orphaned header. The deadline is stored as given: backdated
// deadlines are allowed on purpose.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var body struct {
		Amount   uint32 `json:"amount"`
		Deadline string `json:"deadline"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Amount == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be greater than zero"})
	}
	if body.Deadline == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "deadline is required"})
	}
	deadline, err := parseDeadline(body.Deadline)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deadline"})
	}

	ctx := c.Request().Context()
	product, err := h.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	reservationID, err := h.Reservations.Create(ctx, userID, productID, body.Amount, deadline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create reservation"})
	}

	// Notify downstream consumers. Publishing is best effort: a broker
	// outage must not fail the booking, and the request context is not
	// used so client cancellation cannot abort the publish.
	go func() {
		_ = queue_publisher.PublishReservationCreated(context.Background(), queue.ReservationCreatedEvent{
			ReservationID: reservationID,
			UserID:        userID,
			ProductID:     productID,
			ProductName:   product.Name,
			Amount:        body.Amount,
			Deadline:      deadline.Format(time.RFC3339),
			Status:        model.StatusPending,
			CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "reservation created",
		"reservation_id": reservationID,
	})
}

// Cancel handles DELETE /v1/reservations/:reservationId. Only the owner
// may cancel, and only while the reservation is still pending; anything
// else is a business error reported with 400. Cancellation sets the
// status, it does not delete the row.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := pathID(c, "reservationId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if err := h.Reservations.CancelForUser(c.Request().Context(), reservationID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrNotCancelable):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only pending reservations can be canceled"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not cancel reservation"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reservation canceled"})
}

// ListActive handles GET /v1/reservations: every reservation of the
// caller that is neither canceled nor finalized, flattened per line item.
func (h *ReservationHandler) ListActive(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rows, err := h.Reservations.ListActiveByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservations"})
	}
	return c.JSON(http.StatusOK, rows)
}

// ListCanceled handles GET /v1/reservations/cancel.
func (h *ReservationHandler) ListCanceled(c echo.Context) error {
	return h.listByStatus(c, model.StatusCanceled)
}

// ListFinalized handles GET /v1/reservations/finalizada.
func (h *ReservationHandler) ListFinalized(c echo.Context) error {
	return h.listByStatus(c, model.StatusFinalized)
}

func (h *ReservationHandler) listByStatus(c echo.Context, status string) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rows, err := h.Reservations.ListByUserAndStatus(c.Request().Context(), userID, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load reservations"})
	}
	return c.JSON(http.StatusOK, rows)
}
