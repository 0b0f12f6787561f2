package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGenre(t *testing.T) {
	g, err := ParseGenre("scifi")
	assert.NoError(t, err)
	assert.Equal(t, GenreSciFi, g)

	g, err = ParseGenre("  HORROR ")
	assert.NoError(t, err)
	assert.Equal(t, GenreHorror, g)

	_, err = ParseGenre("Western")
	assert.ErrorIs(t, err, ErrInvalidGenre)
	_, err = ParseGenre("")
	assert.ErrorIs(t, err, ErrInvalidGenre)
}

func TestParseRating(t *testing.T) {
	r, err := ParseRating("pg13")
	assert.NoError(t, err)
	assert.Equal(t, RatingPG13, r)

	_, err = ParseRating("X")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestMovieDuration(t *testing.T) {
	m := Movie{DurationMin: 116}
	assert.Equal(t, 116*time.Minute, m.Duration())
}
