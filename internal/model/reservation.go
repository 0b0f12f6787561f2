package model

import "time"

// Reservation records one user's booking for one showtime. PaymentRef
// is carried for a future payment integration and is never populated.
type Reservation struct {
	ID         uint64    `json:"id"`                    // reservations.id
	UserID     uint64    `json:"user_id"`               // reservations.user_id
	ShowTimeID uint64    `json:"showtime_id"`           // reservations.showtime_id
	ReservedAt time.Time `json:"reserved_at"`           // reservations.reserved_at
	PaymentRef *string   `json:"payment_ref,omitempty"` // reservations.payment_ref (nullable, unused)
}

// ReservationSeat binds a reservation to one seat for one showtime.
// The pair (SeatID, ShowTimeID) is unique at the storage layer; that
// index, not any application check, is what makes double booking
// impossible. Rows are inserted only inside reservation creation and
// deleted only inside cancellation, never updated.
type ReservationSeat struct {
	ID            uint64 // reservation_seats.id
	ReservationID uint64 // reservation_seats.reservation_id
	SeatID        uint64 // reservation_seats.seat_id
	ShowTimeID    uint64 // reservation_seats.showtime_id
}
