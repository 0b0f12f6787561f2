package repository

import (
	"context"
	"database/sql"

	"github.com/Ramez23/Movies-System/internal/model"
)

// SeatRepo reads seat rows. Seats are written only as part of hall
// provisioning, so this repo is query-only.
type SeatRepo struct{ db *sql.DB }

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// ListByHall returns a hall's seats ordered by seat number.
func (r *SeatRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	const q = `SELECT id, hall_id, seat_number, status, created_at
	           FROM seats WHERE hall_id = ? ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.HallID, &s.SeatNumber, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
