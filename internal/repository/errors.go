// Package repository contains the raw-SQL data access layer. Sentinel
// errors defined here let the service layer distinguish failure
// scenarios without inspecting driver errors itself.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Not-found sentinels, one per entity, returned when a lookup by id
// yields no row.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrHallNotFound        = errors.New("hall not found")
	ErrShowtimeNotFound    = errors.New("showtime not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ErrEmailExists is returned when an insert or update collides with the
// unique index on users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrSeatTaken is returned when a reservation_seats insert collides with
// the unique (seat_id, showtime_id) index. This error is semantically
// "seat already booked", never a transient failure, and must not be
// retried.
var ErrSeatTaken = errors.New("seat already booked for this showtime")

// ErrConflict is returned when a delete cannot proceed because
// dependent reservation records exist.
var ErrConflict = errors.New("conflict")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062), i.e. a unique-index violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
