package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/service"
)

// ReservationHandler exposes booking, cancellation and listing.
type ReservationHandler struct {
	Reservations *service.ReservationService
}

func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	ShowTimeID uint64   `json:"showtime_id" validate:"required"`
	Seats      []string `json:"seats" validate:"required,min=1"`
}

// Availability returns the free/reserved seat split for a showtime.
// Never cached; the split must reflect the current reservations.
func (h *ReservationHandler) Availability(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	av, err := h.Reservations.GetSeatAvailability(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, av)
}

// Create books seats for the caller. Seat tokens that do not parse as
// integers are ignored; offending seats come back together in a 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	detail, err := h.Reservations.Create(ctx, currentUserID(c), req.ShowTimeID, req.Seats)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// Cancel frees a reservation's seats. Owners cancel their own; admins
// can cancel any. Refused once the showtime has started.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Reservations.Cancel(ctx, currentUserID(c), isAdmin(c), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMine returns the caller's upcoming reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Reservations.ListForUser(ctx, currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	if list == nil {
		list = []repository.ReservationDetail{}
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll returns every reservation grouped per user, past screenings
// included. Admin only.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	groups, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return fail(c, err)
	}
	if groups == nil {
		groups = []repository.UserReservations{}
	}
	return c.JSON(http.StatusOK, groups)
}
