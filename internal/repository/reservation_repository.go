package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
)

// ReservationDetail is a reservation joined with its showtime, movie
// and hall, plus the seat numbers it holds.
type ReservationDetail struct {
	ID          uint64    `json:"id"`
	ShowTimeID  uint64    `json:"showtime_id"`
	MovieTitle  string    `json:"movie_title"`
	HallName    string    `json:"hall_name"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	SeatNumbers []int     `json:"seat_numbers"`
}

// UserReservations groups a user's reservations for the admin listing.
type UserReservations struct {
	UserID       uint64              `json:"user_id"`
	Name         string              `json:"name"`
	Reservations []ReservationDetail `json:"reservations"`
}

// ReservationRepo provides persistence for reservations and their seat
// links. The unique index on (seat_id, showtime_id) is the final
// authority against double booking; everything above it is advisory.
type ReservationRepo struct{ db *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ReservedSeatIDs returns the ids of seats already taken for a
// showtime.
func (r *ReservationRepo) ReservedSeatIDs(ctx context.Context, showtimeID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT seat_id FROM reservation_seats WHERE showtime_id = ?`, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Create inserts the reservation and all of its seat links in one
// transaction. A duplicate-key failure on the seat/showtime index means
// another reservation won a race for at least one seat; that surfaces
// as ErrSeatTaken and nothing is persisted.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation, seatIDs []uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ins, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (user_id, showtime_id) VALUES (?, ?)`, res.UserID, res.ShowTimeID)
	if err != nil {
		return err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	placeholders := make([]string, 0, len(seatIDs))
	args := make([]interface{}, 0, len(seatIDs)*3)
	for _, seatID := range seatIDs {
		placeholders = append(placeholders, "(?, ?, ?)")
		args = append(args, res.ID, seatID, res.ShowTimeID)
	}
	q := `INSERT INTO reservation_seats (reservation_id, seat_id, showtime_id) VALUES ` + strings.Join(placeholders, ", ")
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetWithShowtime fetches a reservation together with its showtime's
// start, which the caller needs for the cancellation cutoff.
func (r *ReservationRepo) GetWithShowtime(ctx context.Context, id uint64) (*model.Reservation, time.Time, error) {
	const q = `SELECT r.id, r.user_id, r.showtime_id, r.reserved_at, st.starts_at
	           FROM reservations r
	           JOIN showtimes st ON st.id = r.showtime_id
	           WHERE r.id = ? LIMIT 1`
	var res model.Reservation
	var startsAt time.Time
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&res.ID, &res.UserID, &res.ShowTimeID, &res.ReservedAt, &startsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrReservationNotFound
		}
		return nil, time.Time{}, err
	}
	return &res, startsAt, nil
}

// Delete removes a reservation and its seat links. Seat links go first;
// their foreign key to the reservation is RESTRICT.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservation_seats WHERE reservation_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const reservationDetailQuery = `
	SELECT r.id, r.user_id, r.showtime_id, m.title, h.name,
	       st.starts_at,
	       DATE_ADD(st.starts_at, INTERVAL m.duration_min MINUTE) AS ends_at
	FROM reservations r
	JOIN showtimes st ON st.id = r.showtime_id
	JOIN movies m ON m.id = st.movie_id
	JOIN halls  h ON h.id = st.hall_id`

// ListUpcomingByUser returns a user's reservations for showtimes that
// start strictly after now, soonest first, with seat numbers populated.
func (r *ReservationRepo) ListUpcomingByUser(ctx context.Context, userID uint64, now time.Time) ([]ReservationDetail, error) {
	q := reservationDetailQuery + ` WHERE r.user_id = ? AND st.starts_at > ? ORDER BY st.starts_at`
	rows, err := r.db.QueryContext(ctx, q, userID, now.UTC())
	if err != nil {
		return nil, err
	}
	details, _, err := scanReservationDetails(rows)
	if err != nil {
		return nil, err
	}
	if err := r.populateSeatNumbers(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// ListAllGrouped returns every reservation, past ones included, grouped
// per user in user-id order.
func (r *ReservationRepo) ListAllGrouped(ctx context.Context) ([]UserReservations, error) {
	q := `
	SELECT r.id, r.user_id, r.showtime_id, m.title, h.name,
	       st.starts_at,
	       DATE_ADD(st.starts_at, INTERVAL m.duration_min MINUTE) AS ends_at,
	       u.name
	FROM reservations r
	JOIN showtimes st ON st.id = r.showtime_id
	JOIN movies m ON m.id = st.movie_id
	JOIN halls  h ON h.id = st.hall_id
	JOIN users  u ON u.id = r.user_id
	ORDER BY r.user_id, st.starts_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []UserReservations
	var details []ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		var userID uint64
		var userName string
		if err := rows.Scan(&d.ID, &userID, &d.ShowTimeID, &d.MovieTitle, &d.HallName, &d.StartsAt, &d.EndsAt, &userName); err != nil {
			return nil, err
		}
		if len(groups) == 0 || groups[len(groups)-1].UserID != userID {
			groups = append(groups, UserReservations{UserID: userID, Name: userName})
		}
		g := &groups[len(groups)-1]
		g.Reservations = append(g.Reservations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range groups {
		details = append(details, groups[i].Reservations...)
	}
	if err := r.populateSeatNumbers(ctx, details); err != nil {
		return nil, err
	}
	// append copied the rows out of the groups, so the seat numbers
	// have to be written back into the grouped slices by position.
	idx := 0
	for i := range groups {
		for j := range groups[i].Reservations {
			groups[i].Reservations[j].SeatNumbers = details[idx].SeatNumbers
			idx++
		}
	}
	return groups, nil
}

func scanReservationDetails(rows *sql.Rows) ([]ReservationDetail, []uint64, error) {
	defer rows.Close()
	var details []ReservationDetail
	var userIDs []uint64
	for rows.Next() {
		var d ReservationDetail
		var userID uint64
		if err := rows.Scan(&d.ID, &userID, &d.ShowTimeID, &d.MovieTitle, &d.HallName, &d.StartsAt, &d.EndsAt); err != nil {
			return nil, nil, err
		}
		details = append(details, d)
		userIDs = append(userIDs, userID)
	}
	return details, userIDs, rows.Err()
}

// populateSeatNumbers fills SeatNumbers for each detail with a single
// IN-clause query over all reservation ids.
func (r *ReservationRepo) populateSeatNumbers(ctx context.Context, details []ReservationDetail) error {
	if len(details) == 0 {
		return nil
	}
	byID := make(map[uint64]*ReservationDetail, len(details))
	placeholders := make([]string, 0, len(details))
	args := make([]interface{}, 0, len(details))
	for i := range details {
		byID[details[i].ID] = &details[i]
		placeholders = append(placeholders, "?")
		args = append(args, details[i].ID)
	}
	q := `SELECT rs.reservation_id, s.seat_number
	      FROM reservation_seats rs
	      JOIN seats s ON s.id = rs.seat_id
	      WHERE rs.reservation_id IN (` + strings.Join(placeholders, ", ") + `)
	      ORDER BY s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var resID uint64
		var num int
		if err := rows.Scan(&resID, &num); err != nil {
			return err
		}
		if d, ok := byID[resID]; ok {
			d.SeatNumbers = append(d.SeatNumbers, num)
		}
	}
	return rows.Err()
}
