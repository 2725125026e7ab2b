package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetmetrics/internal/auth"
	"fleetmetrics/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) IssueToken(user *model.User) (auth.AccessToken, error) {
	args := m.Called(user)
	return args.Get(0).(auth.AccessToken), args.Error(1)
}
