package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// FavoriteRepo manages the many-to-many favorites ledger between users
// and products. Uniqueness of the (user, product) pair is enforced by a
// composite unique key on the table: Add is a single INSERT, so two
// concurrent adds for the same pair yield one row and one
// ErrDuplicateFavorite instead of two rows.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo constructs a FavoriteRepo with the given DB handle.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// FavoriteItem is one row of a user's favorites listing, joined with the
// product fields the storefront renders. The json tags mirror the wire
// contract consumed by the frontend.
type FavoriteItem struct {
	ProductID   uint64  `json:"id_product"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Favorite    bool    `json:"favorito"`
	Image       string  `json:"image"`
}

// Add inserts the favorite pair. It returns ErrDuplicateFavorite when
// the pair already exists.
func (r *FavoriteRepo) Add(ctx context.Context, userID, productID uint64) error {
	const q = `INSERT INTO favorite_products (user_id, product_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, productID); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return ErrDuplicateFavorite
		}
		return err
	}
	return nil
}

// Remove deletes the favorite pair. It returns ErrFavoriteNotFound when
// no such pair exists.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, productID uint64) error {
	const q = `DELETE FROM favorite_products WHERE user_id = ? AND product_id = ?`
	res, err := r.db.ExecContext(ctx, q, userID, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListByUser returns the caller's favorited products joined with their
// catalog fields. Order is whatever the storage returns; insertion order
// is not guaranteed.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]FavoriteItem, error) {
	const q = `SELECT f.product_id, p.name, p.price, p.category, p.image
FROM favorite_products f
JOIN products p ON p.id = f.product_id
WHERE f.user_id = ?`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]FavoriteItem, 0)
	for rows.Next() {
		item := FavoriteItem{Favorite: true}
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Price, &item.Category, &item.Image); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
