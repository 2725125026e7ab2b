package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
	"fleetmetrics/internal/storage"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNotFound      = errors.New("document not found")
	ErrNoFile        = errors.New("document has no file attached")
	ErrReaderNil     = errors.New("reader is nil")
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling compliance documents.
type DocumentService interface {
	// Create registers a new document by title, unverified.
	Create(ctx context.Context, title string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// SetVerification sets the verified flag and maintains the verification
	// metadata invariant: stamping happens once, re-verification is idempotent,
	// and unverifying clears date and verifier.
	SetVerification(ctx context.Context, id int64, verified bool, verifiedBy *string) error

	// AttachFile uploads the content to object storage and records the file
	// metadata on the document, rolling back the object if the DB update fails.
	// originalFilename is used only to extract the extension.
	AttachFile(ctx context.Context, id int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error)

	// OpenFile streams a document's attached file from object storage.
	OpenFile(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store storage.Storage
	repo  repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository) DocumentService {
	return &documentService{store: store, repo: repo}
}

func (s *documentService) Create(ctx context.Context, title string) (*model.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	return s.repo.Create(ctx, title)
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// SetVerification delegates the whole transition to the repository.
// The verification timestamp is only consumed when the document is being
// verified for the first time.
func (s *documentService) SetVerification(ctx context.Context, id int64, verified bool, verifiedBy *string) error {
	err := s.repo.SetVerification(ctx, id, verified, time.Now().UTC(), verifiedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *documentService) AttachFile(ctx context.Context, id int64, r io.Reader, originalFilename string, contentType string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	// Generate object key using UUID + original extension
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc, err := s.repo.AttachFile(ctx, id, objInfo.Key, objInfo.Size, contentType)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return doc, nil
}

func (s *documentService) OpenFile(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if doc.FileKey == nil {
		return nil, storage.ObjectInfo{}, ErrNoFile
	}
	return s.store.Get(ctx, *doc.FileKey)
}
