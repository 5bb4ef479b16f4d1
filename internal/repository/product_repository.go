package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rosaleda/pasteleria-api/internal/model"
)

// ProductRepo manages persistence for catalog products. Reservations and
// favorites reference products by ID, so rows returned here are treated
// as immutable while a reservation is in flight.
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepo constructs a ProductRepo with the given DB handle.
func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *ProductRepo) DB() *sql.DB { return r.db }

const productCols = `id, name, description, price, category, image, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image, &p.CreatedAt, &p.UpdatedAt)
}

// Create inserts a new product and populates the generated ID and the
// DB-default timestamps on the given struct.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	const q = `INSERT INTO products (name, description, price, category, image) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.Category, p.Image)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT ` + productCols + ` FROM products WHERE id = ?`
	return scanProduct(r.db.QueryRowContext(ctx, sel, p.ID), p)
}

// GetByID retrieves a product by its ID. It returns ErrProductNotFound
// when no matching row exists.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products WHERE id = ?`
	var p model.Product
	if err := scanProduct(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns every product in the catalog. An empty catalog yields
// an empty slice and nil error.
func (r *ProductRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products`
	return r.list(ctx, q)
}

// ListByCategory returns all products belonging to the given category.
func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products WHERE category = ?`
	return r.list(ctx, q, category)
}

// ListCheapest returns up to limit products ordered by price ascending.
func (r *ProductRepo) ListCheapest(ctx context.Context, limit int) ([]model.Product, error) {
	const q = `SELECT ` + productCols + ` FROM products ORDER BY price ASC LIMIT ?`
	return r.list(ctx, q, limit)
}

func (r *ProductRepo) list(ctx context.Context, q string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Update rewrites the mutable fields of an existing product. The caller
// is responsible for field-level validation; the repository only reports
// ErrProductNotFound when the row does not exist.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product) error {
	const q = `UPDATE products SET name = ?, description = ?, price = ?, category = ?, image = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.Price, p.Category, p.Image, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the row is missing or the update was a no-op; distinguish
		// by checking existence so a same-values update still succeeds.
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM products WHERE id = ?`, p.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProductNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a product from the catalog. Returns ErrProductNotFound
// when no row was deleted.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}
