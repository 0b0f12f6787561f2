package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/service"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// reqContext bounds a handler's database work.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// currentUserID reads the authenticated user id set by the JWT
// middleware. Zero means the route was not protected.
func currentUserID(c echo.Context) uint64 {
	if id, ok := c.Get("user_id").(uint64); ok {
		return id
	}
	return 0
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "ADMIN"
}

// pathID parses the named path parameter as an id.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// fail translates domain errors into HTTP responses. Anything not
// recognized becomes a 500 with a generic message so internals never
// leak to clients.
func fail(c echo.Context, err error) error {
	var seatsErr *service.SeatsUnavailableError
	var hallErr *service.HallConflictError
	switch {
	case errors.As(err, &seatsErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": seatsErr.Error(), "seats": seatsErr.SeatNumbers})
	case errors.As(err, &hallErr):
		return c.JSON(http.StatusConflict, echo.Map{"error": hallErr.Error(), "conflicting_showtime": hallErr.Existing})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrHallNotFound),
		errors.Is(err, repository.ErrShowtimeNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPastShowtime),
		errors.Is(err, service.ErrShowtimeStarted),
		errors.Is(err, service.ErrNoValidSeats),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, model.ErrInvalidGenre),
		errors.Is(err, model.ErrInvalidRating),
		errors.Is(err, model.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, repository.ErrRefreshInvalid):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
