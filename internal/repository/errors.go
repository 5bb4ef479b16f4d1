// Package repository contains the data access layer. This file defines
// sentinel errors shared across repositories so that handlers can map
// failure scenarios to HTTP responses with errors.Is instead of string
// matching.
package repository

import "errors"

// ErrProductNotFound indicates that no product row matches the requested ID
// or filter. Handlers should translate this into an HTTP 404 response.
var ErrProductNotFound = errors.New("product not found")

// ErrReservationNotFound indicates that a reservation does not exist or,
// for user-scoped operations, does not belong to the caller. Both cases
// map to HTTP 404 so that callers cannot probe other users' reservations.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrNotCancelable is returned when a user tries to cancel a reservation
// whose status is not pending. It is a business error, not a failure:
// handlers translate it into HTTP 400.
var ErrNotCancelable = errors.New("reservation is not cancelable")

// ErrFavoriteNotFound indicates that the (user, product) favorite pair
// does not exist. Maps to HTTP 404.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrDuplicateFavorite indicates that the (user, product) favorite pair
// already exists. The unique key on favorite_products raises this on
// insert, which makes concurrent double-adds resolve to exactly one row.
// Maps to HTTP 400.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// ErrEmailExists indicates that a user with the given email is already
// registered. Maps to HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound indicates that no user row matches the requested ID or
// email.
var ErrUserNotFound = errors.New("user not found")
