package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/repository"
)

// FavoriteHandler exposes the favorites ledger: add, remove and list.
// Add and remove address the pair via path parameters; the listing is
// scoped to the authenticated caller.
type FavoriteHandler struct {
	Favorites *repository.FavoriteRepo
	Products  *repository.ProductRepo
}

// NewFavoriteHandler constructs a FavoriteHandler and panics if any
// dependency is nil.
func NewFavoriteHandler(favorites *repository.FavoriteRepo, products *repository.ProductRepo) *FavoriteHandler {
	if favorites == nil || products == nil {
		panic("nil repository passed to NewFavoriteHandler")
	}
	return &FavoriteHandler{Favorites: favorites, Products: products}
}

// Add handles POST /v1/favorites/:userId/:productId. A duplicate pair is
// a business error reported with 400; the unique key on the table makes
// the insert atomic, so concurrent adds cannot both succeed.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	// Reject pairs pointing at products that do not exist.
	if _, err := h.Products.GetByID(c.Request().Context(), productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if err := h.Favorites.Add(c.Request().Context(), userID, productID); err != nil {
		if errors.Is(err, repository.ErrDuplicateFavorite) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product is already in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add favorite"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product added to favorites"})
}

// Remove handles DELETE /v1/favorites/:userId/:productId.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	if err := h.Favorites.Remove(c.Request().Context(), userID, productID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product is not in favorites"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove favorite"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product removed from favorites"})
}

// ListMine handles GET /v1/favorites and returns the caller's favorited
// products joined with their catalog fields.
func (h *FavoriteHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Favorites.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load favorites"})
	}
	return c.JSON(http.StatusOK, items)
}
