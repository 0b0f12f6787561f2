package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/service"
)

// HallHandler exposes hall management.
type HallHandler struct {
	Catalog *service.CatalogService
}

func NewHallHandler(catalog *service.CatalogService) *HallHandler {
	return &HallHandler{Catalog: catalog}
}

type hallReq struct {
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

// Create adds a hall and provisions seats 1..capacity. Admin only.
func (h *HallHandler) Create(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	hall, err := h.Catalog.AddHall(ctx, req.Name, req.Capacity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, hall)
}

// Get returns a single hall.
func (h *HallHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	hall, err := h.Catalog.GetHall(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}

// List returns all halls.
func (h *HallHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	halls, err := h.Catalog.ListHalls(ctx)
	if err != nil {
		return fail(c, err)
	}
	if halls == nil {
		halls = []model.Hall{}
	}
	return c.JSON(http.StatusOK, halls)
}

// Seats returns a hall's seat block.
func (h *HallHandler) Seats(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	seats, err := h.Catalog.ListHallSeats(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if seats == nil {
		seats = []model.Seat{}
	}
	return c.JSON(http.StatusOK, seats)
}

// Update changes name and capacity without touching seats. Admin only.
func (h *HallHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	hall, err := h.Catalog.UpdateHall(ctx, id, req.Name, req.Capacity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, hall)
}

// Delete removes a hall, its seats and showtimes unless reservations
// exist. Admin only.
func (h *HallHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Catalog.DeleteHall(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
