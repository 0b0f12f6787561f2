package model

import "time"

// ShowTime represents a scheduled screening of a movie in a hall.
// Only the start is stored; the end is always derived from the movie's
// duration at read time, so a later duration change shifts the
// effective end of every existing showtime implicitly.
type ShowTime struct {
	ID        uint64    `json:"id"`         // showtimes.id
	MovieID   uint64    `json:"movie_id"`   // showtimes.movie_id
	HallID    uint64    `json:"hall_id"`    // showtimes.hall_id
	StartsAt  time.Time `json:"starts_at"`  // showtimes.starts_at (UTC)
	CreatedAt time.Time `json:"created_at"` // showtimes.created_at
}
