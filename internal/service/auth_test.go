package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fleetmetrics/internal/auth"
	"fleetmetrics/internal/model"
	repoMocks "fleetmetrics/internal/repository/mocks"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByUsername", ctx, "admin").Return(&model.User{
			ID:             1,
			Username:       "admin",
			HashedPassword: mustHash(t, "s3cret"),
		}, nil)

		svc := NewAuthService(mUsers, "test-secret", 30*time.Minute)
		user, err := svc.Authenticate(ctx, "admin", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		mUsers.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByUsername", ctx, "admin").Return(&model.User{
			ID:             1,
			Username:       "admin",
			HashedPassword: mustHash(t, "s3cret"),
		}, nil)

		svc := NewAuthService(mUsers, "test-secret", 30*time.Minute)
		_, err := svc.Authenticate(ctx, "admin", "nope")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)

		svc := NewAuthService(mUsers, "test-secret", 30*time.Minute)
		_, err := svc.Authenticate(ctx, "ghost", "s3cret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository error passed through", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUsers.On("FindByUsername", ctx, "admin").Return(nil, errors.New("db down"))

		svc := NewAuthService(mUsers, "test-secret", 30*time.Minute)
		_, err := svc.Authenticate(ctx, "admin", "s3cret")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_IssueToken(t *testing.T) {
	const secret = "test-secret"

	svc := NewAuthService(new(repoMocks.MockUserRepository), secret, 30*time.Minute)
	tok, err := svc.IssueToken(&model.User{ID: 1, Username: "admin"})

	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), tok.Exp, 5*time.Second)

	sub, err := auth.ParseSubject(secret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}
