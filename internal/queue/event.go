// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	ProductID     uint64 `json:"product_id"`
	ProductName   string `json:"product_name"`
	Amount        uint32 `json:"amount"`
	Deadline      string `json:"deadline"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
