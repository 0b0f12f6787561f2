package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
)

// SeatStatus is one seat's derived state for one showtime. The status
// comes entirely from the reservation links; seats carry no
// per-showtime state of their own.
type SeatStatus struct {
	SeatID     uint64 `json:"seat_id"`
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status"`
}

// SeatAvailability is the full seat map of one showtime, in seat
// number order.
type SeatAvailability struct {
	Showtime repository.ShowtimeDetail `json:"showtime"`
	Seats    []SeatStatus              `json:"seats"`
}

// ReservationService implements booking, cancellation and listing.
type ReservationService struct {
	reservations ReservationStore
	showtimes    ShowtimeStore
	seats        SeatStore
	events       EventPublisher
	now          func() time.Time
}

func NewReservationService(reservations ReservationStore, showtimes ShowtimeStore, seats SeatStore, events EventPublisher) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		showtimes:    showtimes,
		seats:        seats,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ParseSeatNumbers extracts positive integers from raw seat tokens.
// Tokens that do not parse as integers are dropped silently, and
// duplicates collapse to one, so "1, x, 2, 1" yields [1 2].
func ParseSeatNumbers(tokens []string) []int {
	seen := make(map[int]bool, len(tokens))
	var out []int
	for _, tok := range tokens {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil || n <= 0 {
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// GetSeatAvailability returns the free/reserved seat split for a
// showtime.
func (s *ReservationService) GetSeatAvailability(ctx context.Context, showtimeID uint64) (*SeatAvailability, error) {
	detail, err := s.showtimes.GetDetail(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	seats, err := s.seats.ListByHall(ctx, detail.HallID)
	if err != nil {
		return nil, err
	}
	reservedIDs, err := s.reservations.ReservedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	reserved := make(map[uint64]bool, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = true
	}
	av := &SeatAvailability{Showtime: *detail, Seats: make([]SeatStatus, 0, len(seats))}
	for _, seat := range seats {
		status := model.SeatStatusFree
		if reserved[seat.ID] {
			status = model.SeatStatusReserved
		}
		av.Seats = append(av.Seats, SeatStatus{SeatID: seat.ID, SeatNumber: seat.SeatNumber, Status: status})
	}
	return av, nil
}

// Create books the requested seats for a user on a showtime. Every
// offending seat, whether unknown in the hall or already taken, is
// collected into one SeatsUnavailableError rather than failing on the
// first. A race lost at insert time is re-read so the error still
// names the actual seats.
func (s *ReservationService) Create(ctx context.Context, userID, showtimeID uint64, seatTokens []string) (*repository.ReservationDetail, error) {
	detail, err := s.showtimes.GetDetail(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	if !detail.StartsAt.After(s.now()) {
		return nil, ErrPastShowtime
	}
	numbers := ParseSeatNumbers(seatTokens)
	if len(numbers) == 0 {
		return nil, ErrNoValidSeats
	}
	seats, err := s.seats.ListByHall(ctx, detail.HallID)
	if err != nil {
		return nil, err
	}
	byNumber := make(map[int]uint64, len(seats))
	for _, seat := range seats {
		byNumber[seat.SeatNumber] = seat.ID
	}
	reserved, err := s.reservedSet(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	var offenders []int
	seatIDs := make([]uint64, 0, len(numbers))
	for _, n := range numbers {
		id, ok := byNumber[n]
		if !ok || reserved[id] {
			offenders = append(offenders, n)
			continue
		}
		seatIDs = append(seatIDs, id)
	}
	if len(offenders) > 0 {
		sort.Ints(offenders)
		return nil, &SeatsUnavailableError{SeatNumbers: offenders}
	}

	res := &model.Reservation{UserID: userID, ShowTimeID: showtimeID}
	if err := s.reservations.Create(ctx, res, seatIDs); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// Someone else won the insert race. Re-read the reserved
			// set so the error names the seats that were lost.
			fresh, rerr := s.reservedSet(ctx, showtimeID)
			if rerr != nil {
				return nil, err
			}
			for i, id := range seatIDs {
				if fresh[id] {
					offenders = append(offenders, numbers[i])
				}
			}
			if len(offenders) == 0 {
				offenders = numbers
			}
			sort.Ints(offenders)
			return nil, &SeatsUnavailableError{SeatNumbers: offenders}
		}
		return nil, err
	}

	sort.Ints(numbers)
	s.events.PublishReservationConfirmed(ctx, res.ID, userID, showtimeID, numbers)
	return &repository.ReservationDetail{
		ID:          res.ID,
		ShowTimeID:  showtimeID,
		MovieTitle:  detail.MovieTitle,
		HallName:    detail.HallName,
		StartsAt:    detail.StartsAt,
		EndsAt:      detail.EndsAt,
		SeatNumbers: numbers,
	}, nil
}

func (s *ReservationService) reservedSet(ctx context.Context, showtimeID uint64) (map[uint64]bool, error) {
	ids, err := s.reservations.ReservedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Cancel removes a reservation and frees its seats. Non-admins can only
// cancel their own reservations; to them a foreign reservation looks
// like a missing one. Cancellation is refused once the showtime has
// started.
func (s *ReservationService) Cancel(ctx context.Context, userID uint64, isAdmin bool, reservationID uint64) error {
	res, startsAt, err := s.reservations.GetWithShowtime(ctx, reservationID)
	if err != nil {
		return err
	}
	if !isAdmin && res.UserID != userID {
		return repository.ErrReservationNotFound
	}
	if !startsAt.After(s.now()) {
		return ErrShowtimeStarted
	}
	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		return err
	}
	s.events.PublishReservationCancelled(ctx, reservationID, res.UserID, res.ShowTimeID)
	return nil
}

// ListForUser returns a user's reservations for showtimes that have
// not started yet.
func (s *ReservationService) ListForUser(ctx context.Context, userID uint64) ([]repository.ReservationDetail, error) {
	return s.reservations.ListUpcomingByUser(ctx, userID, s.now())
}

// ListAll returns every reservation grouped per user, past screenings
// included. Admin only; the handler enforces the role.
func (s *ReservationService) ListAll(ctx context.Context) ([]repository.UserReservations, error) {
	return s.reservations.ListAllGrouped(ctx)
}
