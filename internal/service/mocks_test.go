package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
)

// Mock stores

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 101 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefresh(ctx context.Context, userID uint64, hash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, hash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenStore) ValidateRefresh(ctx context.Context, hash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockTokenStore) RevokeByHash(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

func (m *MockTokenStore) RevokeAllForUser(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockMovieStore struct {
	mock.Mock
}

func (m *MockMovieStore) Create(ctx context.Context, mv *model.Movie) error {
	args := m.Called(ctx, mv)
	if mv != nil && args.Error(0) == nil {
		mv.ID = 11
	}
	return args.Error(0)
}

func (m *MockMovieStore) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieStore) List(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieStore) Update(ctx context.Context, mv *model.Movie) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockMovieStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockHallStore struct {
	mock.Mock
}

func (m *MockHallStore) CreateWithSeats(ctx context.Context, h *model.Hall, seats []model.Seat) error {
	args := m.Called(ctx, h, seats)
	if h != nil && args.Error(0) == nil {
		h.ID = 21
	}
	return args.Error(0)
}

func (m *MockHallStore) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hall), args.Error(1)
}

func (m *MockHallStore) List(ctx context.Context) ([]model.Hall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hall), args.Error(1)
}

func (m *MockHallStore) Update(ctx context.Context, h *model.Hall) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHallStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSeatStore struct {
	mock.Mock
}

func (m *MockSeatStore) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Seat), args.Error(1)
}

type MockShowtimeStore struct {
	mock.Mock
}

func (m *MockShowtimeStore) Create(ctx context.Context, st *model.ShowTime) error {
	args := m.Called(ctx, st)
	if st != nil && args.Error(0) == nil {
		st.ID = 31
	}
	return args.Error(0)
}

func (m *MockShowtimeStore) GetByID(ctx context.Context, id uint64) (*model.ShowTime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShowTime), args.Error(1)
}

func (m *MockShowtimeStore) GetDetail(ctx context.Context, id uint64) (*repository.ShowtimeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ShowtimeDetail), args.Error(1)
}

func (m *MockShowtimeStore) FindConflict(ctx context.Context, hallID uint64, start, end time.Time, excludeID uint64) (*repository.ShowtimeDetail, error) {
	args := m.Called(ctx, hallID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ShowtimeDetail), args.Error(1)
}

func (m *MockShowtimeStore) ListUpcoming(ctx context.Context, now time.Time) ([]repository.ShowtimeDetail, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ShowtimeDetail), args.Error(1)
}

func (m *MockShowtimeStore) ListUpcomingByGenre(ctx context.Context, now time.Time, genre model.Genre) ([]repository.ShowtimeDetail, error) {
	args := m.Called(ctx, now, genre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ShowtimeDetail), args.Error(1)
}

func (m *MockShowtimeStore) Update(ctx context.Context, st *model.ShowTime) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func (m *MockShowtimeStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) ReservedSeatIDs(ctx context.Context, showtimeID uint64) ([]uint64, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockReservationStore) Create(ctx context.Context, res *model.Reservation, seatIDs []uint64) error {
	args := m.Called(ctx, res, seatIDs)
	if res != nil && args.Error(0) == nil {
		res.ID = 41
	}
	return args.Error(0)
}

func (m *MockReservationStore) GetWithShowtime(ctx context.Context, id uint64) (*model.Reservation, time.Time, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, time.Time{}, args.Error(2)
	}
	return args.Get(0).(*model.Reservation), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockReservationStore) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationStore) ListUpcomingByUser(ctx context.Context, userID uint64, now time.Time) ([]repository.ReservationDetail, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReservationDetail), args.Error(1)
}

func (m *MockReservationStore) ListAllGrouped(ctx context.Context) ([]repository.UserReservations, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserReservations), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReservationConfirmed(ctx context.Context, reservationID, userID, showtimeID uint64, seatNumbers []int) {
	m.Called(ctx, reservationID, userID, showtimeID, seatNumbers)
}

func (m *MockPublisher) PublishReservationCancelled(ctx context.Context, reservationID, userID, showtimeID uint64) {
	m.Called(ctx, reservationID, userID, showtimeID)
}
