package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newReservationFixture() (*ReservationService, *MockReservationStore, *MockShowtimeStore, *MockSeatStore, *MockPublisher) {
	resStore := new(MockReservationStore)
	stStore := new(MockShowtimeStore)
	seatStore := new(MockSeatStore)
	pub := new(MockPublisher)
	svc := NewReservationService(resStore, stStore, seatStore, pub)
	svc.now = func() time.Time { return testNow }
	return svc, resStore, stStore, seatStore, pub
}

func futureShowtime() *repository.ShowtimeDetail {
	return &repository.ShowtimeDetail{
		ID:          7,
		MovieID:     11,
		HallID:      21,
		MovieTitle:  "Arrival",
		HallName:    "Hall A",
		DurationMin: 116,
		StartsAt:    testNow.Add(3 * time.Hour),
		EndsAt:      testNow.Add(3*time.Hour + 116*time.Minute),
	}
}

func hallSeats(n int) []model.Seat {
	seats := make([]model.Seat, n)
	for i := range seats {
		seats[i] = model.Seat{ID: uint64(1000 + i + 1), HallID: 21, SeatNumber: i + 1, Status: model.SeatStatusFree}
	}
	return seats
}

func TestParseSeatNumbers(t *testing.T) {
	assert.Equal(t, []int{1, 2, 4}, ParseSeatNumbers([]string{"1", " 2 ", "x", "4"}))
	assert.Equal(t, []int{3}, ParseSeatNumbers([]string{"3", "3", "three", "-1", "0"}))
	assert.Nil(t, ParseSeatNumbers([]string{"a", "b", ""}))
}

func TestGetSeatAvailability(t *testing.T) {
	svc, resStore, stStore, seatStore, _ := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(4), nil)
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{1002}, nil)

	av, err := svc.GetSeatAvailability(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, []SeatStatus{
		{SeatID: 1001, SeatNumber: 1, Status: model.SeatStatusFree},
		{SeatID: 1002, SeatNumber: 2, Status: model.SeatStatusReserved},
		{SeatID: 1003, SeatNumber: 3, Status: model.SeatStatusFree},
		{SeatID: 1004, SeatNumber: 4, Status: model.SeatStatusFree},
	}, av.Seats)

	// Repeated reads with no intervening writes are identical.
	again, err := svc.GetSeatAvailability(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, av, again)
}

func TestCreateReservation(t *testing.T) {
	svc, resStore, stStore, seatStore, pub := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(5), nil)
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{}, nil)
	resStore.On("Create", mock.Anything, mock.Anything, []uint64{1001, 1003}).Return(nil)
	pub.On("PublishReservationConfirmed", mock.Anything, uint64(41), uint64(5), uint64(7), []int{1, 3}).Return()

	detail, err := svc.Create(context.Background(), 5, 7, []string{"1", "3"})
	assert.NoError(t, err)
	assert.Equal(t, uint64(41), detail.ID)
	assert.Equal(t, "Arrival", detail.MovieTitle)
	assert.Equal(t, []int{1, 3}, detail.SeatNumbers)
	pub.AssertExpectations(t)
}

func TestCreateReservationIgnoresJunkTokens(t *testing.T) {
	svc, resStore, stStore, seatStore, pub := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(5), nil)
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{}, nil)
	resStore.On("Create", mock.Anything, mock.Anything, []uint64{1002}).Return(nil)
	pub.On("PublishReservationConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	detail, err := svc.Create(context.Background(), 5, 7, []string{"2", "two", "2"})
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, detail.SeatNumbers)
}

func TestCreateReservationNoValidSeats(t *testing.T) {
	svc, _, stStore, _, _ := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)

	_, err := svc.Create(context.Background(), 5, 7, []string{"x", "", "zero"})
	assert.ErrorIs(t, err, ErrNoValidSeats)
}

func TestCreateReservationResolvesShowtimeFirst(t *testing.T) {
	// The showtime lookup comes before any seat-token handling, so a
	// bad seat list against a missing or started showtime reports the
	// showtime failure.
	svc, _, stStore, _, _ := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(99)).Return(nil, repository.ErrShowtimeNotFound)

	_, err := svc.Create(context.Background(), 5, 99, []string{"x", ""})
	assert.ErrorIs(t, err, repository.ErrShowtimeNotFound)

	started := futureShowtime()
	started.StartsAt = testNow.Add(-time.Minute)
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(started, nil)

	_, err = svc.Create(context.Background(), 5, 7, []string{"x", ""})
	assert.ErrorIs(t, err, ErrPastShowtime)
}

func TestCreateReservationPastShowtime(t *testing.T) {
	svc, _, stStore, _, _ := newReservationFixture()
	past := futureShowtime()
	past.StartsAt = testNow.Add(-time.Minute)
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(past, nil)

	_, err := svc.Create(context.Background(), 5, 7, []string{"1"})
	assert.ErrorIs(t, err, ErrPastShowtime)
}

func TestCreateReservationCollectsAllOffenders(t *testing.T) {
	svc, resStore, stStore, seatStore, _ := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(5), nil)
	// Seat 2 already taken; seat 99 does not exist in the hall.
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{1002}, nil)

	_, err := svc.Create(context.Background(), 5, 7, []string{"2", "1", "99"})
	var seatsErr *SeatsUnavailableError
	assert.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []int{2, 99}, seatsErr.SeatNumbers)
	resStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservationLosesInsertRace(t *testing.T) {
	svc, resStore, stStore, seatStore, pub := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(5), nil)
	// First read sees the seats free, so the service tries to insert.
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{}, nil).Once()
	resStore.On("Create", mock.Anything, mock.Anything, []uint64{1001, 1004}).Return(repository.ErrSeatTaken)
	// The re-read names the seat that was lost.
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{1004}, nil).Once()

	_, err := svc.Create(context.Background(), 5, 7, []string{"1", "4"})
	var seatsErr *SeatsUnavailableError
	assert.ErrorAs(t, err, &seatsErr)
	assert.Equal(t, []int{4}, seatsErr.SeatNumbers)
	pub.AssertNotCalled(t, "PublishReservationConfirmed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelReservation(t *testing.T) {
	svc, resStore, _, _, pub := newReservationFixture()
	res := &model.Reservation{ID: 41, UserID: 5, ShowTimeID: 7}
	resStore.On("GetWithShowtime", mock.Anything, uint64(41)).Return(res, testNow.Add(time.Hour), nil)
	resStore.On("Delete", mock.Anything, uint64(41)).Return(nil)
	pub.On("PublishReservationCancelled", mock.Anything, uint64(41), uint64(5), uint64(7)).Return()

	err := svc.Cancel(context.Background(), 5, false, 41)
	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestCancelReservationForeignUser(t *testing.T) {
	svc, resStore, _, _, _ := newReservationFixture()
	res := &model.Reservation{ID: 41, UserID: 5, ShowTimeID: 7}
	resStore.On("GetWithShowtime", mock.Anything, uint64(41)).Return(res, testNow.Add(time.Hour), nil)

	err := svc.Cancel(context.Background(), 6, false, 41)
	assert.ErrorIs(t, err, repository.ErrReservationNotFound)
	resStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCancelReservationAdminOverride(t *testing.T) {
	svc, resStore, _, _, pub := newReservationFixture()
	res := &model.Reservation{ID: 41, UserID: 5, ShowTimeID: 7}
	resStore.On("GetWithShowtime", mock.Anything, uint64(41)).Return(res, testNow.Add(time.Hour), nil)
	resStore.On("Delete", mock.Anything, uint64(41)).Return(nil)
	pub.On("PublishReservationCancelled", mock.Anything, uint64(41), uint64(5), uint64(7)).Return()

	assert.NoError(t, svc.Cancel(context.Background(), 999, true, 41))
}

func TestCancelReservationAfterStart(t *testing.T) {
	svc, resStore, _, _, _ := newReservationFixture()
	res := &model.Reservation{ID: 41, UserID: 5, ShowTimeID: 7}
	resStore.On("GetWithShowtime", mock.Anything, uint64(41)).Return(res, testNow.Add(-time.Minute), nil)

	err := svc.Cancel(context.Background(), 5, false, 41)
	assert.ErrorIs(t, err, ErrShowtimeStarted)
	resStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListForUserPassesClock(t *testing.T) {
	svc, resStore, _, _, _ := newReservationFixture()
	resStore.On("ListUpcomingByUser", mock.Anything, uint64(5), testNow).
		Return([]repository.ReservationDetail{{ID: 41}}, nil)

	list, err := svc.ListForUser(context.Background(), 5)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateReservationStoreFailure(t *testing.T) {
	svc, resStore, stStore, seatStore, _ := newReservationFixture()
	stStore.On("GetDetail", mock.Anything, uint64(7)).Return(futureShowtime(), nil)
	seatStore.On("ListByHall", mock.Anything, uint64(21)).Return(hallSeats(5), nil)
	resStore.On("ReservedSeatIDs", mock.Anything, uint64(7)).Return([]uint64{}, nil)
	boom := errors.New("connection reset")
	resStore.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	_, err := svc.Create(context.Background(), 5, 7, []string{"1"})
	assert.ErrorIs(t, err, boom)
}
