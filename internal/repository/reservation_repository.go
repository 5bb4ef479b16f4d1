package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rosaleda/pasteleria-api/internal/model"
)

// ReservationRepo provides persistence for reservation headers and their
// line items and assembles the flattened read views. A reservation is
// created together with its first line item in one transaction so that a
// failure between the two inserts never leaves an orphaned header.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need transaction
// control spanning multiple repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRow is one flattened line of a reservation view. Each line
// item of a reservation produces one row carrying the duplicated header
// fields alongside the item fields; Price is the unit price multiplied by
// the amount.
type ReservationRow struct {
	ReservationID uint64    `json:"reservationId"`
	Deadline      time.Time `json:"deadline"`
	Status        string    `json:"status"`
	ProductName   string    `json:"productName"`
	Amount        uint32    `json:"amount"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
}

// OwnerInfo carries the reservation owner's contact fields exposed on the
// privileged all-reservations view.
type OwnerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AdminReservationRow extends ReservationRow with the owner's identity
// for the all-reservations view.
type AdminReservationRow struct {
	ReservationRow
	User OwnerInfo `json:"user"`
}

// Create inserts a reservation header with status pendiente and exactly
// one line item in a single transaction. It returns the generated
// reservation ID. The caller must have resolved the product beforehand;
// the deadline is stored as given without comparison against the clock.
func (r *ReservationRepo) Create(ctx context.Context, userID, productID uint64, amount uint32, deadline time.Time) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const insHeader = `INSERT INTO reservations (user_id, deadline) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, insHeader, userID, deadline)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	const insDetail = `INSERT INTO reservation_details (reservation_id, product_id, amount) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insDetail, uint64(id), productID, amount); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// CancelForUser transitions a reservation owned by userID from pendiente
// to cancelada. It returns ErrReservationNotFound when no reservation
// with that ID belongs to the user and ErrNotCancelable when the current
// status forbids the transition (already in preparation, finalized or
// canceled). The row is never deleted.
func (r *ReservationRepo) CancelForUser(ctx context.Context, reservationID, userID uint64) error {
	const sel = `SELECT status FROM reservations WHERE reservation_id = ? AND user_id = ?`
	var status string
	if err := r.db.QueryRowContext(ctx, sel, reservationID, userID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	if !model.CanCancel(status) {
		return ErrNotCancelable
	}
	const upd = `UPDATE reservations SET status = ? WHERE reservation_id = ?`
	_, err := r.db.ExecContext(ctx, upd, model.StatusCanceled, reservationID)
	return err
}

// AdminUpdate replaces the status and/or deadline of a reservation. The
// transition graph is deliberately NOT enforced here: administrators may
// set any status value, including jumping pendiente straight to
// finalizado or reviving a canceled reservation. Passing nil leaves a
// field unchanged. Returns ErrReservationNotFound when the reservation
// does not exist.
func (r *ReservationRepo) AdminUpdate(ctx context.Context, reservationID uint64, status *string, deadline *time.Time) error {
	var exists uint64
	const sel = `SELECT reservation_id FROM reservations WHERE reservation_id = ?`
	if err := r.db.QueryRowContext(ctx, sel, reservationID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if deadline != nil {
		sets = append(sets, "deadline = ?")
		args = append(args, *deadline)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, reservationID)
	q := `UPDATE reservations SET ` + strings.Join(sets, ", ") + ` WHERE reservation_id = ?`
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// viewQuery is the shared join for all flattened views: every line item
// yields one output row with the line price precomputed in SQL.
const viewQuery = `SELECT r.reservation_id, r.deadline, r.status, p.name, d.amount, p.price * d.amount, p.category
FROM reservations r
JOIN reservation_details d ON d.reservation_id = r.reservation_id
JOIN products p ON p.id = d.product_id`

// ListActiveByUser returns the flattened rows of the caller's
// reservations that are neither canceled nor finalized, in storage order.
func (r *ReservationRepo) ListActiveByUser(ctx context.Context, userID uint64) ([]ReservationRow, error) {
	q := viewQuery + ` WHERE r.user_id = ? AND r.status NOT IN (?, ?)`
	return r.listRows(ctx, q, userID, model.StatusCanceled, model.StatusFinalized)
}

// ListByUserAndStatus returns the flattened rows of the caller's
// reservations in the given status, in storage order.
func (r *ReservationRepo) ListByUserAndStatus(ctx context.Context, userID uint64, status string) ([]ReservationRow, error) {
	q := viewQuery + ` WHERE r.user_id = ? AND r.status = ?`
	return r.listRows(ctx, q, userID, status)
}

func (r *ReservationRepo) listRows(ctx context.Context, q string, args ...any) ([]ReservationRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]ReservationRow, 0)
	for rows.Next() {
		var row ReservationRow
		if err := rows.Scan(&row.ReservationID, &row.Deadline, &row.Status,
			&row.ProductName, &row.Amount, &row.Price, &row.Category); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListAll returns the flattened rows of every reservation regardless of
// owner or status, joined with the owner's name and phone and ordered by
// deadline descending. Intended for the privileged admin view only.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]AdminReservationRow, error) {
	const q = `SELECT r.reservation_id, r.deadline, r.status, p.name, d.amount, p.price * d.amount, p.category, u.name, u.phone
FROM reservations r
JOIN reservation_details d ON d.reservation_id = r.reservation_id
JOIN products p ON p.id = d.product_id
JOIN users u ON u.id = r.user_id
ORDER BY r.deadline DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]AdminReservationRow, 0)
	for rows.Next() {
		var row AdminReservationRow
		if err := rows.Scan(&row.ReservationID, &row.Deadline, &row.Status,
			&row.ProductName, &row.Amount, &row.Price, &row.Category,
			&row.User.Name, &row.User.Phone); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
