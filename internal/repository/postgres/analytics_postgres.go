package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fleetmetrics/internal/repository"
)

// AnalyticsPostgres is a PostgreSQL implementation of repository.AnalyticsRepository.
// Every operation runs its sub-queries inside one read-only transaction so the
// counts it returns come from a single consistent snapshot.
type AnalyticsPostgres struct {
	db *sql.DB
}

// NewAnalyticsPostgres creates a new AnalyticsPostgres repository.
func NewAnalyticsPostgres(db *sql.DB) *AnalyticsPostgres {
	return &AnalyticsPostgres{db: db}
}

var _ repository.AnalyticsRepository = (*AnalyticsPostgres)(nil)

// EmployeeGrowth groups active employees by calendar month of registration.
// Buckets are ordered by month key so downstream projection always sees the
// chronological series.
func (r *AnalyticsPostgres) EmployeeGrowth(ctx context.Context) ([]repository.MonthBucket, error) {
	const q = `
		SELECT to_char(registration_date, 'YYYY-MM') AS month, COUNT(*) AS registrations
		FROM employees
		WHERE is_archived = FALSE
		GROUP BY month
		ORDER BY month
	`
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]repository.MonthBucket, 0)
	for rows.Next() {
		var b repository.MonthBucket
		if err := rows.Scan(&b.Month, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit read tx: %w", err)
	}
	return buckets, nil
}

// TruckerBuckets groups all truckers (archived included) by province and by
// company name, with missing company names normalized to 'Independent'.
// Both result sets order by count descending, then name, so ties resolve
// deterministically and the first company row is the most common bucket.
func (r *AnalyticsPostgres) TruckerBuckets(ctx context.Context) (*repository.TruckerBuckets, error) {
	const qProvince = `
		SELECT province_of_issue, COUNT(*) AS truckers
		FROM truckers
		GROUP BY province_of_issue
		ORDER BY truckers DESC, province_of_issue
	`
	const qCompany = `
		SELECT COALESCE(company_name, 'Independent') AS company, COUNT(*) AS truckers
		FROM truckers
		GROUP BY company
		ORDER BY truckers DESC, company
	`
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	byProvince, err := queryBuckets(ctx, tx, qProvince)
	if err != nil {
		return nil, err
	}
	byCompany, err := queryBuckets(ctx, tx, qCompany)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit read tx: %w", err)
	}
	return &repository.TruckerBuckets{ByProvince: byProvince, ByCompany: byCompany}, nil
}

// EntityCounts tallies totals for all three record tables in one snapshot.
func (r *AnalyticsPostgres) EntityCounts(ctx context.Context) (*repository.EntityCounts, error) {
	const qEmployees = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_archived = FALSE)
		FROM employees
	`
	const qTruckers = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_archived = FALSE)
		FROM truckers
	`
	const qDocuments = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE verified = TRUE)
		FROM documents
	`
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read tx: %w", err)
	}
	defer tx.Rollback()

	var c repository.EntityCounts
	if err := tx.QueryRowContext(ctx, qEmployees).Scan(&c.TotalEmployees, &c.ActiveEmployees); err != nil {
		return nil, err
	}
	if err := tx.QueryRowContext(ctx, qTruckers).Scan(&c.TotalTruckers, &c.ActiveTruckers); err != nil {
		return nil, err
	}
	if err := tx.QueryRowContext(ctx, qDocuments).Scan(&c.TotalDocuments, &c.VerifiedDocuments); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit read tx: %w", err)
	}
	return &c, nil
}

func queryBuckets(ctx context.Context, tx *sql.Tx, q string) ([]repository.Bucket, error) {
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]repository.Bucket, 0)
	for rows.Next() {
		var b repository.Bucket
		if err := rows.Scan(&b.Name, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
