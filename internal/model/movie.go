package model

import (
	"errors"
	"strings"
	"time"
)

// Genre is the closed set of movie genres. Free text from the API edge
// must go through ParseGenre; core logic only ever sees valid values.
type Genre string

const (
	GenreAction      Genre = "Action"
	GenreComedy      Genre = "Comedy"
	GenreDrama       Genre = "Drama"
	GenreHorror      Genre = "Horror"
	GenreSciFi       Genre = "SciFi"
	GenreRomance     Genre = "Romance"
	GenreDocumentary Genre = "Documentary"
	GenreAnimation   Genre = "Animation"
)

// Rating is the closed set of audience ratings.
type Rating string

const (
	RatingG    Rating = "G"
	RatingPG   Rating = "PG"
	RatingPG13 Rating = "PG13"
	RatingR    Rating = "R"
	RatingNC17 Rating = "NC17"
)

var (
	// ErrInvalidGenre is returned by ParseGenre for unknown values.
	ErrInvalidGenre = errors.New("invalid genre")
	// ErrInvalidRating is returned by ParseRating for unknown values.
	ErrInvalidRating = errors.New("invalid rating")

	genres = []Genre{
		GenreAction, GenreComedy, GenreDrama, GenreHorror,
		GenreSciFi, GenreRomance, GenreDocumentary, GenreAnimation,
	}
	ratings = []Rating{RatingG, RatingPG, RatingPG13, RatingR, RatingNC17}
)

// Genres returns all valid genres in declaration order.
func Genres() []Genre { return genres }

// Ratings returns all valid ratings in declaration order.
func Ratings() []Rating { return ratings }

// ParseGenre matches free text against the genre enum, ignoring case
// and surrounding whitespace.
func ParseGenre(s string) (Genre, error) {
	t := strings.TrimSpace(s)
	for _, g := range genres {
		if strings.EqualFold(t, string(g)) {
			return g, nil
		}
	}
	return "", ErrInvalidGenre
}

// ParseRating matches free text against the rating enum, ignoring case
// and surrounding whitespace.
func ParseRating(s string) (Rating, error) {
	t := strings.TrimSpace(s)
	for _, r := range ratings {
		if strings.EqualFold(t, string(r)) {
			return r, nil
		}
	}
	return "", ErrInvalidRating
}

// Movie represents a row in the `movies` table. DurationMin is the
// running time in minutes; every showtime's end is derived from it at
// read time and never stored.
type Movie struct {
	ID          uint64    `json:"id"`           // movies.id
	Title       string    `json:"title"`        // movies.title
	Genre       Genre     `json:"genre"`        // movies.genre
	DurationMin int       `json:"duration_min"` // movies.duration_min
	ReleaseDate time.Time `json:"release_date"` // movies.release_date
	Rating      Rating    `json:"rating"`       // movies.rating
	CreatedAt   time.Time `json:"created_at"`   // movies.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // movies.updated_at
}

// Duration returns the running time as a time.Duration.
func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationMin) * time.Minute
}
