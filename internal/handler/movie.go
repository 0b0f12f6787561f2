package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/service"
)

// MovieHandler exposes movie catalog management.
type MovieHandler struct {
	Catalog *service.CatalogService
}

func NewMovieHandler(catalog *service.CatalogService) *MovieHandler {
	return &MovieHandler{Catalog: catalog}
}

type movieReq struct {
	Title       string `json:"title" validate:"required"`
	Genre       string `json:"genre" validate:"required"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0"`
	ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
	Rating      string `json:"rating" validate:"required"`
}

func (r movieReq) releaseDate() time.Time {
	// Validated above with the datetime tag, so Parse cannot fail here.
	t, _ := time.Parse("2006-01-02", r.ReleaseDate)
	return t
}

// Genres lists the valid genre and rating values so clients can build
// pickers and the showtime genre filter without hardcoding the enums.
func (h *MovieHandler) Genres(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"genres":  model.Genres(),
		"ratings": model.Ratings(),
	})
}

// Create adds a movie. Admin only.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Catalog.AddMovie(ctx, req.Title, req.Genre, req.DurationMin, req.releaseDate(), req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Get returns a single movie.
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Catalog.GetMovie(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// List returns all movies.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	movies, err := h.Catalog.ListMovies(ctx)
	if err != nil {
		return fail(c, err)
	}
	if movies == nil {
		movies = []model.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// Update replaces a movie's fields. Admin only.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	m, err := h.Catalog.UpdateMovie(ctx, id, req.Title, req.Genre, req.DurationMin, req.releaseDate(), req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Delete removes a movie and its showtimes unless reservations exist.
// Admin only.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Catalog.DeleteMovie(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
