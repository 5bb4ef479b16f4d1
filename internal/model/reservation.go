package model

import "time"

// Reservation statuses as stored in the `reservations` table. The values
// are Spanish because they are the literal ENUM values of the production
// database; do not translate them without a migration.
const (
	StatusPending       = "pendiente"
	StatusInPreparation = "en preparacion"
	StatusFinalized     = "finalizado"
	StatusCanceled      = "cancelada"
)

// Statuses lists every valid reservation status.
var Statuses = []string{StatusPending, StatusInPreparation, StatusFinalized, StatusCanceled}

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanCancel reports whether a reservation in the given status may be
// canceled by its owner. Only pending reservations are cancelable; once a
// reservation enters preparation, finishes or is already canceled the
// transition is rejected. Administrators bypass this guard entirely via
// the admin update endpoint.
func CanCancel(status string) bool {
	return status == StatusPending
}

// Reservation is the booking header: one row per booking event. Line
// items live in ReservationDetail. Cancellation is a status transition,
// the row is never deleted.
//
// Fields:
//  ReservationID – primary key identifier.
//  UserID        – owner of the reservation.
//  Deadline      – date/time the order is due. Informational only: no
//                  automatic transition or expiry is driven by it.
//  Status        – one of the Status* constants, default StatusPending.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Reservation struct {
	ReservationID uint64    `json:"reservationId"`
	UserID        uint64    `json:"userId"`
	Deadline      time.Time `json:"deadline"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReservationDetail is a single line item under a reservation header:
// one product and the amount ordered. Details are created together with
// the header in one transaction and are never mutated afterwards.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reference to the reservation header.
//  ProductID     – reserved product; must exist at creation time.
//  Amount        – positive quantity.
type ReservationDetail struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"reservationId"`
	ProductID     uint64 `json:"productId"`
	Amount        uint32 `json:"amount"`
}
