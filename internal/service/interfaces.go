package service

import (
	"context"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
)

// The store interfaces mirror the repository types so services stay
// testable with mocks. The concrete repositories satisfy them.

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id uint64) error
}

type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, hash string, expiresAt time.Time) error
	ValidateRefresh(ctx context.Context, hash string) (*model.RefreshToken, error)
	RevokeByHash(ctx context.Context, hash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, m *model.Movie) error
	Delete(ctx context.Context, id uint64) error
}

type HallStore interface {
	CreateWithSeats(ctx context.Context, h *model.Hall, seats []model.Seat) error
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	List(ctx context.Context) ([]model.Hall, error)
	Update(ctx context.Context, h *model.Hall) error
	Delete(ctx context.Context, id uint64) error
}

type SeatStore interface {
	ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error)
}

type ShowtimeStore interface {
	Create(ctx context.Context, st *model.ShowTime) error
	GetByID(ctx context.Context, id uint64) (*model.ShowTime, error)
	GetDetail(ctx context.Context, id uint64) (*repository.ShowtimeDetail, error)
	FindConflict(ctx context.Context, hallID uint64, start, end time.Time, excludeID uint64) (*repository.ShowtimeDetail, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]repository.ShowtimeDetail, error)
	ListUpcomingByGenre(ctx context.Context, now time.Time, genre model.Genre) ([]repository.ShowtimeDetail, error)
	Update(ctx context.Context, st *model.ShowTime) error
	Delete(ctx context.Context, id uint64) error
}

type ReservationStore interface {
	ReservedSeatIDs(ctx context.Context, showtimeID uint64) ([]uint64, error)
	Create(ctx context.Context, res *model.Reservation, seatIDs []uint64) error
	GetWithShowtime(ctx context.Context, id uint64) (*model.Reservation, time.Time, error)
	Delete(ctx context.Context, id uint64) error
	ListUpcomingByUser(ctx context.Context, userID uint64, now time.Time) ([]repository.ReservationDetail, error)
	ListAllGrouped(ctx context.Context) ([]repository.UserReservations, error)
}

// EventPublisher emits reservation lifecycle events. Publishing is
// best effort; a broker outage never fails the operation.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, reservationID, userID, showtimeID uint64, seatNumbers []int)
	PublishReservationCancelled(ctx context.Context, reservationID, userID, showtimeID uint64)
}
