package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetmetrics/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, username, hashedPassword string) error {
	args := m.Called(ctx, username, hashedPassword)
	return args.Error(0)
}
