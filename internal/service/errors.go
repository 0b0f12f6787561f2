package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ramez23/Movies-System/internal/repository"
)

var (
	// ErrPastShowtime rejects reservations for showtimes that have
	// already started.
	ErrPastShowtime = errors.New("showtime already started")
	// ErrShowtimeStarted rejects cancelling once the screening began.
	ErrShowtimeStarted = errors.New("cannot cancel a reservation after the showtime started")
	// ErrNoValidSeats means the seat input contained no usable seat
	// number at all after parsing.
	ErrNoValidSeats = errors.New("no valid seat numbers provided")

	// ErrInvalidEmail rejects registration input that does not parse
	// as an address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmailTaken means another account already uses the address.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordMismatch means password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrPasswordTooShort rejects passwords under six characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrInvalidCredentials covers both unknown email and wrong
	// password, so a caller cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SeatsUnavailableError reports every requested seat that does not
// exist in the hall or is already reserved for the showtime. All
// offenders are collected before failing, so the caller sees the full
// picture in one round trip.
type SeatsUnavailableError struct {
	SeatNumbers []int
}

func (e *SeatsUnavailableError) Error() string {
	parts := make([]string, len(e.SeatNumbers))
	for i, n := range e.SeatNumbers {
		parts[i] = strconv.Itoa(n)
	}
	return "seats unavailable: " + strings.Join(parts, ", ")
}

// HallConflictError reports the showtime already occupying the hall
// during the requested window.
type HallConflictError struct {
	Existing repository.ShowtimeDetail
}

func (e *HallConflictError) Error() string {
	return fmt.Sprintf("hall busy: %q runs %s to %s",
		e.Existing.MovieTitle,
		e.Existing.StartsAt.Format("2006-01-02 15:04"),
		e.Existing.EndsAt.Format("2006-01-02 15:04"))
}
