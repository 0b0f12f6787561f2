// Package queue defines message payloads exchanged over the message
// broker, the best-effort publisher and the background audit consumer.
package queue

// ReservationConfirmedEvent is published after a reservation commits.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	ShowTimeID    uint64 `json:"showtime_id"`
	SeatNumbers   []int  `json:"seat_numbers"`
	OccurredAt    string `json:"occurred_at"`
}

// ReservationCancelledEvent is published after a reservation is
// removed and its seats freed.
type ReservationCancelledEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	ShowTimeID    uint64 `json:"showtime_id"`
	OccurredAt    string `json:"occurred_at"`
}
