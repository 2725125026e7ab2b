package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, title string) (*model.Document, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Document]), args.Error(1)
}

func (m *MockDocumentRepository) SetVerification(ctx context.Context, id int64, verified bool, verifiedAt time.Time, verifiedBy *string) error {
	args := m.Called(ctx, id, verified, verifiedAt, verifiedBy)
	return args.Error(0)
}

func (m *MockDocumentRepository) AttachFile(ctx context.Context, id int64, fileKey string, fileSize int64, contentType string) (*model.Document, error) {
	args := m.Called(ctx, id, fileKey, fileSize, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
