package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Ramez23/Movies-System/internal/model"
)

// HallRepo provides persistence for halls and their seats.
type HallRepo struct{ db *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// CreateWithSeats inserts a hall and its full seat block in one
// transaction. The caller provides the seats already numbered; the
// hall id is filled in here once the hall row exists.
func (r *HallRepo) CreateWithSeats(ctx context.Context, h *model.Hall, seats []model.Seat) error {
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

	res, err := tx.ExecContext(ctx, `INSERT INTO halls (name, capacity) VALUES (?, ?)`, h.Name, h.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	if len(seats) > 0 {
		placeholders := make([]string, 0, len(seats))
		args := make([]interface{}, 0, len(seats)*3)
		for _, s := range seats {
			placeholders = append(placeholders, "(?, ?, ?)")
			args = append(args, h.ID, s.SeatNumber, s.Status)
		}
		q := `INSERT INTO seats (hall_id, seat_number, status) VALUES ` + strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a hall. Returns ErrHallNotFound when missing.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, capacity, created_at FROM halls WHERE id = ? LIMIT 1`, id)
	var h model.Hall
	if err := row.Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// List returns every hall ordered by name.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, capacity, created_at FROM halls ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Hall
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.Capacity, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update persists name and capacity. Existing seat rows are left
// untouched; a capacity change does not rebuild the seat block.
func (r *HallRepo) Update(ctx context.Context, h *model.Hall) error {
	res, err := r.db.ExecContext(ctx, `UPDATE halls SET name = ?, capacity = ? WHERE id = ?`, h.Name, h.Capacity, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM halls WHERE id = ?`, h.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrHallNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a hall, its seats and its showtimes. Refuses with
// ErrConflict when any showtime in the hall has reservations.
func (r *HallRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM halls WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrHallNotFound
		}
		return err
	}
	var reserved int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations r
		 JOIN showtimes st ON st.id = r.showtime_id
		 WHERE st.hall_id = ?`, id).Scan(&reserved)
	if err != nil {
		return err
	}
	if reserved > 0 {
		err = ErrConflict
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM showtimes WHERE hall_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM seats WHERE hall_id = ?`, id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM halls WHERE id = ?`, id)
	return err
}
