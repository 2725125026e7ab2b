package repository

import (
	"context"
	"time"

	"fleetmetrics/internal/model"
)

// DocumentRepository defines data access for compliance documents using SQL
// queries only. No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, title string) (*model.Document, error)

	// FindByID returns a document by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// SetVerification applies the verification state transition atomically:
	// verifying stamps verifiedAt/verifiedBy only when the document has no
	// verification date yet; unverifying clears both. The verified flag
	// always follows the request. Missing rows surface as sql.ErrNoRows.
	SetVerification(ctx context.Context, id int64, verified bool, verifiedAt time.Time, verifiedBy *string) error

	// AttachFile records object storage metadata for a document's file and
	// returns the updated row. Missing rows surface as sql.ErrNoRows.
	AttachFile(ctx context.Context, id int64, fileKey string, fileSize int64, contentType string) (*model.Document, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
