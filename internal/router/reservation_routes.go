package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/handler"
	"github.com/rosaleda/pasteleria-api/internal/middleware"
	"github.com/rosaleda/pasteleria-api/internal/model"
)

// RegisterReservations registers the reservation endpoints under
// /v1/reservations. Every route requires a valid JWT; the
// all-reservations view and the unguarded status/deadline update
// additionally require the ADMIN role and live on a separate handler
// because their validation policy differs from the self-service one.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, a *handler.AdminReservationHandler, jwtSecret string) {
	g := e.Group("/v1/reservations", middleware.JWTAuth(jwtSecret))

	g.GET("", h.ListActive)
	g.GET("/cancel", h.ListCanceled)
	g.GET("/finalizada", h.ListFinalized)
	g.POST("/:productId", h.Create)
	g.DELETE("/:reservationId", h.Cancel)

	admin := middleware.RequireRole(model.RoleAdmin)
	g.GET("/all", a.ListAll, admin)
	g.PUT("/:reservationId", a.Update, admin)
}
