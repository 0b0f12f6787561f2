package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramez23/Movies-System/internal/model"
	"github.com/Ramez23/Movies-System/internal/repository"
	"github.com/Ramez23/Movies-System/internal/utils"
)

func newIdentityFixture() (*IdentityService, *MockUserStore, *MockTokenStore) {
	users := new(MockUserStore)
	tokens := new(MockTokenStore)
	svc := NewIdentityService(users, tokens, "test-secret", 15, 7, bcrypt.MinCost)
	return svc, users, tokens
}

func TestRegister(t *testing.T) {
	svc, users, _ := newIdentityFixture()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Ada" &&
			u.Email == "Ada@Example.com" &&
			u.Role == model.RoleOrdinary &&
			utils.PasswordMatches(u.PasswordHash, "secret1")
	})).Return(nil)

	u, err := svc.Register(context.Background(), " Ada ", "Ada@Example.com", "secret1", "secret1", "555-0101")
	assert.NoError(t, err)
	assert.Equal(t, uint64(101), u.ID)
	// The plain password never survives registration.
	assert.NotEqual(t, "secret1", u.PasswordHash)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc, users, _ := newIdentityFixture()

	_, err := svc.Register(context.Background(), "Ada", "not-an-email", "secret1", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "Ada", "Ada <ada@example.com>", "secret1", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "Ada", "ada@example.com", "short", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), "Ada", "ada@example.com", "secret1", "secret2", "")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterEmailTaken(t *testing.T) {
	svc, users, _ := newIdentityFixture()
	users.On("Create", mock.Anything, mock.Anything).Return(repository.ErrEmailExists)

	_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "secret1", "secret1", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, users, tokens := newIdentityFixture()
	hash, _ := utils.HashPassword("secret1", bcrypt.MinCost)
	stored := &model.User{ID: 101, Email: "ada@example.com", PasswordHash: hash, Role: model.RoleOrdinary}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	tokens.On("StoreRefresh", mock.Anything, uint64(101), mock.Anything, mock.Anything).Return(nil)

	s, err := svc.Login(context.Background(), "ada@example.com", "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, s.AccessToken)
	assert.NotEmpty(t, s.RefreshToken)
	assert.Equal(t, uint64(101), s.User.ID)
	tokens.AssertExpectations(t)
}

func TestLoginCollapsesFailures(t *testing.T) {
	svc, users, _ := newIdentityFixture()
	hash, _ := utils.HashPassword("secret1", bcrypt.MinCost)
	stored := &model.User{ID: 101, Email: "ada@example.com", PasswordHash: hash}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(stored, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	// Wrong password and unknown email are indistinguishable.
	_, err := svc.Login(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotates(t *testing.T) {
	svc, users, tokens := newIdentityFixture()
	raw := "raw-refresh-token"
	hash := utils.HashRefreshRaw(raw)
	stored := &model.RefreshToken{ID: 3, UserID: 101, TokenHash: hash, ExpiresAt: time.Now().Add(time.Hour)}
	tokens.On("ValidateRefresh", mock.Anything, hash).Return(stored, nil)
	users.On("GetByID", mock.Anything, uint64(101)).Return(&model.User{ID: 101, Role: model.RoleOrdinary}, nil)
	tokens.On("RevokeByHash", mock.Anything, hash).Return(nil)
	tokens.On("StoreRefresh", mock.Anything, uint64(101), mock.Anything, mock.Anything).Return(nil)

	s, err := svc.Refresh(context.Background(), raw)
	assert.NoError(t, err)
	assert.NotEqual(t, raw, s.RefreshToken)
	tokens.AssertCalled(t, "RevokeByHash", mock.Anything, hash)
}

func TestUpdateUserPartial(t *testing.T) {
	svc, users, _ := newIdentityFixture()
	stored := &model.User{ID: 101, Name: "Ada", Email: "ada@example.com", Phone: "555-0101"}
	users.On("GetByID", mock.Anything, uint64(101)).Return(stored, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// Blank name and phone keep stored values; only email changes.
		return u.Name == "Ada" && u.Email == "new@example.com" && u.Phone == "555-0101"
	})).Return(nil)

	u, err := svc.UpdateUser(context.Background(), 101, "", "new@example.com", "")
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", u.Email)
}

func TestUpdateUserRejectsInvalidEmail(t *testing.T) {
	svc, users, _ := newIdentityFixture()
	users.On("GetByID", mock.Anything, uint64(101)).Return(&model.User{ID: 101}, nil)

	_, err := svc.UpdateUser(context.Background(), 101, "", "nope", "")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteUserRevokesSessions(t *testing.T) {
	svc, users, tokens := newIdentityFixture()
	tokens.On("RevokeAllForUser", mock.Anything, uint64(101)).Return(nil)
	users.On("Delete", mock.Anything, uint64(101)).Return(nil)

	assert.NoError(t, svc.DeleteUser(context.Background(), 101))
	tokens.AssertExpectations(t)
	users.AssertExpectations(t)
}
