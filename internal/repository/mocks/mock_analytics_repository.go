package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetmetrics/internal/repository"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) EmployeeGrowth(ctx context.Context) ([]repository.MonthBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthBucket), args.Error(1)
}

func (m *MockAnalyticsRepository) TruckerBuckets(ctx context.Context) (*repository.TruckerBuckets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TruckerBuckets), args.Error(1)
}

func (m *MockAnalyticsRepository) EntityCounts(ctx context.Context) (*repository.EntityCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EntityCounts), args.Error(1)
}
