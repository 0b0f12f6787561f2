package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/service"
)

// ShowtimeHandler exposes showtime scheduling and browsing.
type ShowtimeHandler struct {
	Catalog *service.CatalogService
}

func NewShowtimeHandler(catalog *service.CatalogService) *ShowtimeHandler {
	return &ShowtimeHandler{Catalog: catalog}
}

type showtimeReq struct {
	MovieID  uint64    `json:"movie_id" validate:"required"`
	HallID   uint64    `json:"hall_id" validate:"required"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
}

// Create schedules a showtime, rejecting hall overlaps. Admin only.
func (h *ShowtimeHandler) Create(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Catalog.AddShowtime(ctx, req.MovieID, req.HallID, req.StartsAt)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, st)
}

// Get returns a showtime with movie, hall and derived end time.
func (h *ShowtimeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Catalog.GetShowtime(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// List returns upcoming showtimes, optionally filtered with ?genre=.
func (h *ShowtimeHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	shows, err := h.Catalog.ListShowtimes(ctx, c.QueryParam("genre"))
	if err != nil {
		return fail(c, err)
	}
	if shows == nil {
		shows = []repository.ShowtimeDetail{}
	}
	return c.JSON(http.StatusOK, shows)
}

// Update moves a showtime, re-checking hall overlap. Admin only.
func (h *ShowtimeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	st, err := h.Catalog.UpdateShowtime(ctx, id, req.MovieID, req.HallID, req.StartsAt)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// Delete removes a showtime unless reservations exist. Admin only.
func (h *ShowtimeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Catalog.DeleteShowtime(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
