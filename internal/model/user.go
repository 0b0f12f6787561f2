package model

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of user roles. Values match the `role` enum
// column on the users table.
type Role string

const (
	RoleOrdinary Role = "ORDINARY" // regular movie-goer
	RoleAdmin    Role = "ADMIN"    // catalog and user administration
)

// ErrInvalidRole is returned by ParseRole for values outside the enum.
var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts free text into a Role, case-insensitively. Unknown
// values are rejected rather than defaulted.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(RoleOrdinary):
		return RoleOrdinary, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// User represents a row in the `users` table. Email is stored
// normalized (lowercased, trimmed) so the UNIQUE index doubles as the
// case-insensitive uniqueness check. Only the bcrypt digest of the
// password is persisted; the confirmation entered at registration is
// validated and discarded.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email (normalized)
	PasswordHash string    // users.password_hash
	Phone        string    // users.phone
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models a row in `refresh_tokens`. The raw token is never
// stored, only its SHA-256 hex digest.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
