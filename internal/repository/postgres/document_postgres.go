package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, verified, verification_date, verified_by, file_key, file_size, content_type, created_at`

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, title string) (*model.Document, error) {
	const q = `
		INSERT INTO documents (title)
		VALUES ($1)
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, title))
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.Verified,
			&d.VerificationDate,
			&d.VerifiedBy,
			&d.FileKey,
			&d.FileSize,
			&d.ContentType,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// SetVerification applies the verification transition inside one transaction.
// The row is locked first, then exactly one UPDATE runs for the branch that
// applies: first verification stamps verifiedAt/verifiedBy, re-verification
// touches only the flag so the original stamp and verifier survive, and
// unverifying clears both. Unknown ids surface as sql.ErrNoRows.
func (r *DocumentPostgres) SetVerification(ctx context.Context, id int64, verified bool, verifiedAt time.Time, verifiedBy *string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const qLock = `
		SELECT verification_date
		FROM documents
		WHERE id = $1
		FOR UPDATE
	`
	var stamped *time.Time
	if err := tx.QueryRowContext(ctx, qLock, id).Scan(&stamped); err != nil {
		return err
	}

	switch {
	case verified && stamped != nil:
		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET verified = TRUE
			WHERE id = $1
		`, id)
	case verified:
		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET verified = TRUE, verification_date = $2, verified_by = $3
			WHERE id = $1
		`, id, verifiedAt, verifiedBy)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET verified = FALSE, verification_date = NULL, verified_by = NULL
			WHERE id = $1
		`, id)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

// AttachFile records object storage metadata for the document's file.
func (r *DocumentPostgres) AttachFile(ctx context.Context, id int64, fileKey string, fileSize int64, contentType string) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET file_key = $2, file_size = $3, content_type = $4
		WHERE id = $1
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, id, fileKey, fileSize, contentType))
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Verified,
		&d.VerificationDate,
		&d.VerifiedBy,
		&d.FileKey,
		&d.FileSize,
		&d.ContentType,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
