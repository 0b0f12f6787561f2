package model

import "time"

// Hall represents a physical venue. Its seats are provisioned in bulk
// when the hall is created, one per capacity unit, numbered 1..capacity.
// Changing Capacity later does not add or remove seats.
type Hall struct {
	ID        uint64    `json:"id"`         // halls.id
	Name      string    `json:"name"`       // halls.name
	Capacity  int       `json:"capacity"`   // halls.capacity
	CreatedAt time.Time `json:"created_at"` // halls.created_at
	UpdatedAt time.Time `json:"updated_at"` // halls.updated_at
}

// SeatStatusFree is the status seats carry from provisioning onward.
// The column is informational only; availability is always derived from
// reservation_seats, never from this field. SeatStatusReserved appears
// only in derived availability output.
const (
	SeatStatusFree     = "Free"
	SeatStatusReserved = "Reserved"
)

// Seat is a numbered bookable unit permanently bound to one hall.
// SeatNumber is unique within the hall.
type Seat struct {
	ID         uint64    `json:"id"`          // seats.id
	HallID     uint64    `json:"hall_id"`     // seats.hall_id
	SeatNumber int       `json:"seat_number"` // seats.seat_number (1-based)
	Status     string    `json:"status"`      // seats.status (informational)
	CreatedAt  time.Time `json:"created_at"`  // seats.created_at
}
