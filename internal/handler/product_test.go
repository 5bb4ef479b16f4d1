package handler

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosaleda/pasteleria-api/internal/repository"
)

func newProductHandler(t *testing.T) (*ProductHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProductHandler(repository.NewProductRepo(db)), mock
}

func TestValidateProduct(t *testing.T) {
	valid := productReq{
		Name:        "Pastel",
		Description: "Pastel de chocolate amargo",
		Price:       100,
		Category:    "Pasteles",
	}
	assert.Empty(t, validateProduct(valid))

	cases := []struct {
		name string
		mut  func(*productReq)
		want string
	}{
		{"empty name", func(r *productReq) { r.Name = "  " }, "name is required"},
		{"zero price", func(r *productReq) { r.Price = 0 }, "price must be greater than zero"},
		{"negative price", func(r *productReq) { r.Price = -5 }, "price must be greater than zero"},
		{"short description", func(r *productReq) { r.Description = "dos palabras" }, "description must contain at least 3 words"},
		{"unknown category", func(r *productReq) { r.Category = "Bebidas" }, "invalid category"},
		{"lowercase category", func(r *productReq) { r.Category = "pasteles" }, "invalid category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mut(&req)
			assert.Equal(t, tc.want, validateProduct(req))
		})
	}
}

func TestListByCategoryInvalid(t *testing.T) {
	h, _ := newProductHandler(t)

	c, rec := newContext(t, http.MethodGet, "/v1/products/category/Bebidas", "", 0)
	c.SetParamNames("category")
	c.SetParamValues("Bebidas")

	require.NoError(t, h.ListByCategory(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByCategoryEmpty(t *testing.T) {
	// A valid category with no products is reported as 404 with a message
	// body rather than an empty 200.
	h, mock := newProductHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category = ?")).
		WithArgs("Arreglos").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "image", "created_at", "updated_at"}))

	c, rec := newContext(t, http.MethodGet, "/v1/products/category/Arreglos", "", 0)
	c.SetParamNames("category")
	c.SetParamValues("Arreglos")

	require.NoError(t, h.ListByCategory(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "message")
}

func TestUpdateKeepsAbsentFields(t *testing.T) {
	h, mock := newProductHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(uint64(5)).
		WillReturnRows(productRow(5, "Pastel", 100.0, "Pasteles"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WithArgs("Pastel", "Tres palabras de prueba", 120.0, "Pasteles", "", uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newContext(t, http.MethodPut, "/v1/products/5", `{"price":120}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMissingProduct(t *testing.T) {
	h, mock := newProductHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "category", "image", "created_at", "updated_at"}))

	c, rec := newContext(t, http.MethodPut, "/v1/products/404", `{"price":120}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("404")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
