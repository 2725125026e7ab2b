package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fleetmetrics/internal/service"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) EmployeeGrowth(ctx context.Context) (*service.EmployeeGrowthResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EmployeeGrowthResult), args.Error(1)
}

func (m *MockAnalyticsService) TruckerDistribution(ctx context.Context) (*service.TruckerDistributionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TruckerDistributionResult), args.Error(1)
}

func (m *MockAnalyticsService) BusinessImpact(ctx context.Context) (*service.BusinessImpactResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BusinessImpactResult), args.Error(1)
}

func (m *MockAnalyticsService) ComplianceSnapshot(ctx context.Context) (*service.ComplianceSnapshotResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComplianceSnapshotResult), args.Error(1)
}
