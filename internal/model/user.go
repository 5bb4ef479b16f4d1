package model

import "time"

// Roles accepted in the JWT "role" claim.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// User represents a customer account as stored in the `users` table.
// PasswordHash holds the bcrypt digest; the plain password is never
// persisted. Name and Phone are surfaced on the privileged
// all-reservations view.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email (unique)
	Phone        string    // users.phone
	PasswordHash string    // users.password_hash
	Role         string    // users.role (CUSTOMER or ADMIN)
	CreatedAt    time.Time // users.created_at
}
