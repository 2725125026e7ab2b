package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetmetrics/internal/auth"
	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
)

// ErrInvalidCredentials is returned for unknown usernames and password
// mismatches alike; callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials and issues access tokens.
type AuthService interface {
	// Authenticate looks up the user and verifies the password hash.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)

	// IssueToken produces a signed, time-limited bearer credential for the user.
	IssueToken(user *model.User) (auth.AccessToken, error)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret string
	accessTTL time.Duration
}

// NewAuthService constructs a new AuthService. A non-positive ttl falls back
// to the signer's default lifetime.
func NewAuthService(users repository.UserRepository, jwtSecret string, accessTTL time.Duration) AuthService {
	return &authService{users: users, jwtSecret: jwtSecret, accessTTL: accessTTL}
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.HashedPassword, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) IssueToken(user *model.User) (auth.AccessToken, error) {
	return auth.NewAccessToken(s.jwtSecret, user.Username, s.accessTTL)
}
