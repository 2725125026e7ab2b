package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
	repoMocks "fleetmetrics/internal/repository/mocks"
	"fleetmetrics/internal/storage"
	storeMocks "fleetmetrics/internal/storage/mocks"
)

func strPtr(s string) *string { return &s }

func TestDocumentService_SetVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("verify with verifier", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("SetVerification", ctx, int64(1), true, mock.Anything, mock.MatchedBy(func(by *string) bool {
			return by != nil && *by == "alice"
		})).Return(nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		err := svc.SetVerification(ctx, 1, true, strPtr("alice"))

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("unverify clears metadata", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("SetVerification", ctx, int64(1), false, mock.Anything, (*string)(nil)).Return(nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		err := svc.SetVerification(ctx, 1, false, nil)

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("SetVerification", ctx, int64(999999), true, mock.Anything, mock.Anything).Return(sql.ErrNoRows)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		err := svc.SetVerification(ctx, 999999, true, strPtr("alice"))

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path trims title", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Create", ctx, "Insurance Certificate").
			Return(&model.Document{ID: 1, Title: "Insurance Certificate"}, nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		doc, err := svc.Create(ctx, "  Insurance Certificate  ")

		require.NoError(t, err)
		assert.Equal(t, int64(1), doc.ID)
	})

	t.Run("blank title", func(t *testing.T) {
		svc := NewDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))
		_, err := svc.Create(ctx, "   ")
		assert.ErrorIs(t, err, ErrTitleRequired)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, int64(3)).Return(&model.Document{ID: 3, Title: "Permit"}, nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		doc, err := svc.Get(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, "Permit", doc.Title)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		_, err := svc.Get(ctx, 404)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults applied", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Document]{
				Items: []model.Document{{ID: 1, Title: "Permit"}},
				Total: 1,
			}, nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		res, err := svc.List(ctx, 0, -5)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		mRepo.AssertExpectations(t)
	})

	t.Run("explicit paging passed through", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 5, Offset: 20}).
			Return(&repository.PageResult[model.Document]{Items: nil, Total: 42}, nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		res, err := svc.List(ctx, 5, 20)

		require.NoError(t, err)
		assert.Equal(t, 42, res.Total)
		mRepo.AssertExpectations(t)
	})
}

func TestDocumentService_AttachFile(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		r := strings.NewReader("pdf bytes")

		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
		}), r, storage.PutObjectOptions{
			Size:        9,
			ContentType: "application/pdf",
			Metadata:    map[string]string{"original-filename": "permit.pdf"},
		}).Return(storage.ObjectInfo{Key: "documents/key.pdf", Size: 9, ContentType: "application/pdf"}, nil)

		mRepo.On("AttachFile", ctx, int64(1), "documents/key.pdf", int64(9), "application/pdf").
			Return(&model.Document{ID: 1}, nil)

		svc := NewDocumentService(mStore, mRepo)
		doc, err := svc.AttachFile(ctx, 1, r, "permit.pdf", "application/pdf", 9)

		require.NoError(t, err)
		assert.Equal(t, int64(1), doc.ID)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := NewDocumentService(new(storeMocks.MockStorage), new(repoMocks.MockDocumentRepository))
		_, err := svc.AttachFile(ctx, 1, nil, "permit.pdf", "application/pdf", 9)
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("storage error", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		r := strings.NewReader("pdf bytes")
		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		svc := NewDocumentService(mStore, new(repoMocks.MockDocumentRepository))
		_, err := svc.AttachFile(ctx, 1, r, "permit.pdf", "application/pdf", 9)

		assert.ErrorContains(t, err, "upload to storage")
	})

	t.Run("unknown document rolls back object", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		r := strings.NewReader("pdf bytes")

		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		mRepo.On("AttachFile", ctx, int64(404), mock.Anything, mock.Anything, mock.Anything).
			Return(nil, sql.ErrNoRows)
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		svc := NewDocumentService(mStore, mRepo)
		_, err := svc.AttachFile(ctx, 404, r, "permit.pdf", "application/pdf", 9)

		assert.ErrorIs(t, err, ErrNotFound)
		mStore.AssertExpectations(t)
	})

	t.Run("failed rollback reported", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		r := strings.NewReader("pdf bytes")

		mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		mRepo.On("AttachFile", ctx, int64(1), mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))

		svc := NewDocumentService(mStore, mRepo)
		_, err := svc.AttachFile(ctx, 1, r, "permit.pdf", "application/pdf", 9)

		assert.ErrorContains(t, err, "rollback delete failed")
	})
}

func TestDocumentService_OpenFile(t *testing.T) {
	ctx := context.Background()

	t.Run("streams attachment", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)

		key := "documents/key.pdf"
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Document{ID: 1, FileKey: &key}, nil)
		mStore.On("Get", ctx, key).Return(io.NopCloser(strings.NewReader("pdf")), storage.ObjectInfo{Key: key, Size: 3}, nil)

		svc := NewDocumentService(mStore, mRepo)
		rc, info, err := svc.OpenFile(ctx, 1)

		require.NoError(t, err)
		defer rc.Close()
		assert.Equal(t, int64(3), info.Size)
	})

	t.Run("no attachment", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Document{ID: 1}, nil)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		_, _, err := svc.OpenFile(ctx, 1)

		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("unknown document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)

		svc := NewDocumentService(new(storeMocks.MockStorage), mRepo)
		_, _, err := svc.OpenFile(ctx, 404)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
