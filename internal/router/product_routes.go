package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/handler"
	"github.com/rosaleda/pasteleria-api/internal/middleware"
	"github.com/rosaleda/pasteleria-api/internal/model"
)

// RegisterProducts registers the catalog endpoints under /v1/products.
// Browse endpoints are public and wrapped by the response cache; the
// mutating endpoints require a JWT with the ADMIN role.
func RegisterProducts(e *echo.Echo, h *handler.ProductHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/products", cache)
	pub.GET("", h.ListAll)
	pub.GET("/cheapest", h.ListCheapest)
	pub.GET("/category/:category", h.ListByCategory)
	pub.GET("/:id", h.GetByID)

	adm := e.Group(
		"/v1/products",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	adm.POST("", h.Create)
	adm.PUT("/:id", h.Update)
	adm.DELETE("/:id", h.Delete)
}
