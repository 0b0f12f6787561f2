package database

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema. Every statement is CREATE TABLE
// IF NOT EXISTS, so running it on every startup is safe. The unique
// index on reservation_seats (seat_id, showtime_id) created here is the
// authority that prevents double booking; the application pre-checks
// availability only as a courtesy to the caller.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
