package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rosaleda/pasteleria-api/internal/model"
	"github.com/rosaleda/pasteleria-api/internal/repository"
)

// cheapestLimit caps the number of rows returned by the cheapest-products
// listing, matching the storefront carousel size.
const cheapestLimit = 15

// ProductHandler exposes catalog CRUD and the public browse listings.
// Create/Update/Delete require the ADMIN role, enforced by route
// middleware.
type ProductHandler struct {
	Products *repository.ProductRepo
}

// NewProductHandler constructs a ProductHandler and panics if the
// repository is nil.
func NewProductHandler(products *repository.ProductRepo) *ProductHandler {
	if products == nil {
		panic("nil repository passed to NewProductHandler")
	}
	return &ProductHandler{Products: products}
}

type productReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// validateProduct applies the catalog field rules: price strictly
// positive, description of at least three words, category in the fixed
// enum. Returns an empty string when the payload is valid.
func validateProduct(req productReq) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.Price <= 0 {
		return "price must be greater than zero"
	}
	if len(strings.Fields(req.Description)) < 3 {
		return "description must contain at least 3 words"
	}
	if !model.ValidCategory(req.Category) {
		return "invalid category"
	}
	return ""
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateProduct(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p := &model.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}
	if err := h.Products.Create(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create product"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"product": p})
}

// GetByID handles GET /v1/products/:id.
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	p, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"product": p})
}

// ListAll handles GET /v1/products.
func (h *ProductHandler) ListAll(c echo.Context) error {
	products, err := h.Products.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// ListByCategory handles GET /v1/products/category/:category.
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	category := c.Param("category")
	if !model.ValidCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	products, err := h.Products.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if len(products) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "no products found in this category"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// ListCheapest handles GET /v1/products/cheapest and returns the lowest
// priced products ordered by price ascending.
func (h *ProductHandler) ListCheapest(c echo.Context) error {
	products, err := h.Products.ListCheapest(c.Request().Context(), cheapestLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// Update handles PUT /v1/products/:id. The full payload is validated and
// applied; partial edits go through the same field rules.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	existing, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// Absent fields keep their current value; present ones are validated.
	if req.Name == "" {
		req.Name = existing.Name
	}
	if req.Description == "" {
		req.Description = existing.Description
	}
	if req.Price == 0 {
		req.Price = existing.Price
	}
	if req.Category == "" {
		req.Category = existing.Category
	}
	if req.Image == "" {
		req.Image = existing.Image
	}
	if msg := validateProduct(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	p := &model.Product{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}
	if err := h.Products.Update(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product updated", "product": p})
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Products.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product deleted"})
}
