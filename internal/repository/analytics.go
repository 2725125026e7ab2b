package repository

import "context"

// MonthBucket is one calendar month ("YYYY-MM") of employee registrations.
type MonthBucket struct {
	Month string
	Count int
}

// Bucket is a generic name→count aggregation row.
type Bucket struct {
	Name  string
	Count int
}

// TruckerBuckets groups all truckers (archived included) by province and by
// normalized company name. Both slices are ordered by count descending, then
// name ascending, so the first company bucket is the most common one.
type TruckerBuckets struct {
	ByProvince []Bucket
	ByCompany  []Bucket
}

// EntityCounts carries the raw tallies consumed by the business impact and
// compliance snapshot computations.
type EntityCounts struct {
	TotalEmployees    int
	ActiveEmployees   int
	TotalTruckers     int
	ActiveTruckers    int
	TotalDocuments    int
	VerifiedDocuments int
}

// AnalyticsRepository runs grouped counting queries over the record tables.
// Each method executes all of its sub-queries inside a single read-only
// transaction so the returned counts are mutually consistent under
// concurrent writes. No business logic here.
type AnalyticsRepository interface {
	// EmployeeGrowth returns active-employee registrations grouped by
	// calendar month, ordered chronologically by month key.
	EmployeeGrowth(ctx context.Context) ([]MonthBucket, error)

	// TruckerBuckets returns province and company groupings over all truckers.
	TruckerBuckets(ctx context.Context) (*TruckerBuckets, error)

	// EntityCounts returns total/active employee and trucker counts and
	// total/verified document counts.
	EntityCounts(ctx context.Context) (*EntityCounts, error)
}
