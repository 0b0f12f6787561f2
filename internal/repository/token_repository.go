package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
)

// ErrRefreshInvalid is returned when a refresh token hash is unknown,
// revoked or expired.
var ErrRefreshInvalid = errors.New("refresh token invalid")

// TokenRepo stores hashed refresh tokens. Only the SHA-256 hash of the
// raw token ever reaches this layer.
type TokenRepo struct{ db *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

// StoreRefresh persists a refresh token hash for a user.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, hash string, expiresAt time.Time) error {
	const q = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, userID, hash, expiresAt.UTC())
	return err
}

// ValidateRefresh looks up a live token by hash. Expired or revoked
// tokens are reported as ErrRefreshInvalid.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, hash string) (*model.RefreshToken, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
	           FROM refresh_tokens WHERE token_hash = ? LIMIT 1`
	var t model.RefreshToken
	err := r.db.QueryRowContext(ctx, q, hash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}
	if t.RevokedAt != nil || time.Now().UTC().After(t.ExpiresAt) {
		return nil, ErrRefreshInvalid
	}
	return &t, nil
}

// RevokeByHash marks a single token revoked. Used on rotation and
// logout; revoking an already-revoked or unknown hash is a no-op.
func (r *TokenRepo) RevokeByHash(ctx context.Context, hash string) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE token_hash = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, hash)
	return err
}

// RevokeAllForUser revokes every live token a user holds.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	const q = `UPDATE refresh_tokens SET revoked_at = UTC_TIMESTAMP() WHERE user_id = ? AND revoked_at IS NULL`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}
