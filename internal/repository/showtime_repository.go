package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
)

// ShowtimeDetail is a showtime joined with its movie and hall. EndsAt
// is computed in SQL from the movie duration; it is never stored.
type ShowtimeDetail struct {
	ID          uint64    `json:"id"`
	MovieID     uint64    `json:"movie_id"`
	HallID      uint64    `json:"hall_id"`
	MovieTitle  string    `json:"movie_title"`
	HallName    string    `json:"hall_name"`
	DurationMin int       `json:"duration_min"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// ShowtimeRepo provides persistence for showtimes.
type ShowtimeRepo struct{ db *sql.DB }

func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

const showtimeDetailQuery = `
	SELECT st.id, st.movie_id, st.hall_id, m.title, h.name, m.duration_min,
	       st.starts_at,
	       DATE_ADD(st.starts_at, INTERVAL m.duration_min MINUTE) AS ends_at
	FROM showtimes st
	JOIN movies m ON m.id = st.movie_id
	JOIN halls  h ON h.id = st.hall_id`

// Create inserts a showtime and populates its generated ID. Overlap
// checking happens in the service before this is called.
func (r *ShowtimeRepo) Create(ctx context.Context, st *model.ShowTime) error {
	const q = `INSERT INTO showtimes (movie_id, hall_id, starts_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.MovieID, st.HallID, st.StartsAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	return nil
}

// GetByID fetches the raw showtime row. Returns ErrShowtimeNotFound
// when missing.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.ShowTime, error) {
	const q = `SELECT id, movie_id, hall_id, starts_at, created_at FROM showtimes WHERE id = ? LIMIT 1`
	var st model.ShowTime
	err := r.db.QueryRowContext(ctx, q, id).Scan(&st.ID, &st.MovieID, &st.HallID, &st.StartsAt, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// GetDetail fetches a showtime joined with movie and hall.
func (r *ShowtimeRepo) GetDetail(ctx context.Context, id uint64) (*ShowtimeDetail, error) {
	row := r.db.QueryRowContext(ctx, showtimeDetailQuery+` WHERE st.id = ? LIMIT 1`, id)
	var d ShowtimeDetail
	err := row.Scan(&d.ID, &d.MovieID, &d.HallID, &d.MovieTitle, &d.HallName, &d.DurationMin, &d.StartsAt, &d.EndsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindConflict returns the first showtime in the hall whose screening
// window overlaps [start, end), or nil when the hall is free. A
// showtime's own window is derived from its movie's duration.
// excludeID skips one showtime, so a reschedule is not blocked by the
// row being moved; pass 0 to consider every showtime.
func (r *ShowtimeRepo) FindConflict(ctx context.Context, hallID uint64, start, end time.Time, excludeID uint64) (*ShowtimeDetail, error) {
	q := showtimeDetailQuery + `
	WHERE st.hall_id = ?
	  AND st.id != ?
	  AND st.starts_at < ?
	  AND DATE_ADD(st.starts_at, INTERVAL m.duration_min MINUTE) > ?
	ORDER BY st.starts_at LIMIT 1`
	row := r.db.QueryRowContext(ctx, q, hallID, excludeID, end.UTC(), start.UTC())
	var d ShowtimeDetail
	err := row.Scan(&d.ID, &d.MovieID, &d.HallID, &d.MovieTitle, &d.HallName, &d.DurationMin, &d.StartsAt, &d.EndsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListUpcoming returns detailed showtimes starting strictly after now,
// soonest first. A showtime starting at this exact instant has already
// begun and is excluded.
func (r *ShowtimeRepo) ListUpcoming(ctx context.Context, now time.Time) ([]ShowtimeDetail, error) {
	q := showtimeDetailQuery + ` WHERE st.starts_at > ? ORDER BY st.starts_at`
	return r.queryDetails(ctx, q, now.UTC())
}

// ListUpcomingByGenre narrows ListUpcoming to a single movie genre.
func (r *ShowtimeRepo) ListUpcomingByGenre(ctx context.Context, now time.Time, genre model.Genre) ([]ShowtimeDetail, error) {
	q := showtimeDetailQuery + ` WHERE st.starts_at > ? AND m.genre = ? ORDER BY st.starts_at`
	return r.queryDetails(ctx, q, now.UTC(), genre)
}

func (r *ShowtimeRepo) queryDetails(ctx context.Context, q string, args ...interface{}) ([]ShowtimeDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShowtimeDetail
	for rows.Next() {
		var d ShowtimeDetail
		if err := rows.Scan(&d.ID, &d.MovieID, &d.HallID, &d.MovieTitle, &d.HallName, &d.DurationMin, &d.StartsAt, &d.EndsAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Update persists movie, hall and start time for a showtime.
func (r *ShowtimeRepo) Update(ctx context.Context, st *model.ShowTime) error {
	const q = `UPDATE showtimes SET movie_id = ?, hall_id = ?, starts_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, st.MovieID, st.HallID, st.StartsAt.UTC(), st.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM showtimes WHERE id = ?`, st.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrShowtimeNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a showtime. Refuses with ErrConflict when the
// showtime has reservations.
func (r *ShowtimeRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM showtimes WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrShowtimeNotFound
		}
		return err
	}
	var reserved int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE showtime_id = ?`, id).Scan(&reserved)
	if err != nil {
		return err
	}
	if reserved > 0 {
		err = ErrConflict
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id)
	return err
}
