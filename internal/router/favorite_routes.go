package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/handler"
	"github.com/rosaleda/pasteleria-api/internal/middleware"
)

// RegisterFavorites registers the favorites ledger endpoints under
// /v1/favorites. Add and remove address the (user, product) pair via
// path parameters; the listing is scoped to the authenticated caller.
func RegisterFavorites(e *echo.Echo, h *handler.FavoriteHandler, jwtSecret string) {
	g := e.Group("/v1/favorites")
	g.POST("/:userId/:productId", h.Add)
	g.DELETE("/:userId/:productId", h.Remove)
	g.GET("", h.ListMine, middleware.JWTAuth(jwtSecret))
}
