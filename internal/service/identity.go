package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/utils"
)

// Session is the token pair handed to a client after login or refresh.
type Session struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	AccessExp    time.Time   `json:"access_expires_at"`
	RefreshToken string      `json:"refresh_token"`
	RefreshExp   time.Time   `json:"refresh_expires_at"`
}

// IdentityService handles registration, login, token rotation and
// account management.
type IdentityService struct {
	users  UserStore
	tokens TokenStore

	jwtSecret      string
	accessTTLMin   int
	refreshTTLDays int
	bcryptCost     int
}

func NewIdentityService(users UserStore, tokens TokenStore, jwtSecret string, accessTTLMin, refreshTTLDays, bcryptCost int) *IdentityService {
	return &IdentityService{
		users:          users,
		tokens:         tokens,
		jwtSecret:      jwtSecret,
		accessTTLMin:   accessTTLMin,
		refreshTTLDays: refreshTTLDays,
		bcryptCost:     bcryptCost,
	}
}

// validateEmail round-trips the input through address parsing so that
// display-name forms like "Bob <bob@x.com>" are rejected, not quietly
// narrowed to the bare address.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates an account. The password must be at least six
// characters and match its confirmation; the confirmation itself is
// never stored.
func (s *IdentityService) Register(ctx context.Context, name, email, password, confirm, phone string) (*model.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(phone),
		Role:         model.RoleOrdinary,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and opens a session. Unknown email and
// wrong password produce the same error.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.PasswordMatches(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, u)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued. Reuse of a rotated token fails validation.
func (s *IdentityService) Refresh(ctx context.Context, rawRefresh string) (*Session, error) {
	hash := utils.HashRefreshRaw(rawRefresh)
	t, err := s.tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeByHash(ctx, hash); err != nil {
		return nil, err
	}
	return s.openSession(ctx, u)
}

// Logout revokes the presented refresh token. The access token simply
// ages out.
func (s *IdentityService) Logout(ctx context.Context, rawRefresh string) error {
	return s.tokens.RevokeByHash(ctx, utils.HashRefreshRaw(rawRefresh))
}

func (s *IdentityService) openSession(ctx context.Context, u *model.User) (*Session, error) {
	access, err := utils.NewAccessToken(s.jwtSecret, u.ID, string(u.Role), s.accessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(s.refreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}
	return &Session{
		User:         u,
		AccessToken:  access.Token,
		AccessExp:    access.Exp,
		RefreshToken: refresh.Raw,
		RefreshExp:   refresh.Exp,
	}, nil
}

// GetUser fetches an account by id.
func (s *IdentityService) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateUser applies a partial update. Blank fields keep the stored
// value; a changed email is re-validated and must stay unique.
func (s *IdentityService) UpdateUser(ctx context.Context, id uint64, name, email, phone string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if email = strings.TrimSpace(email); email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		u.Phone = phone
	}
	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	u.Email = repository.NormalizeEmail(u.Email)
	return u, nil
}

// DeleteUser removes an account, its sessions and everything it
// reserved.
func (s *IdentityService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.tokens.RevokeAllForUser(ctx, id); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}
