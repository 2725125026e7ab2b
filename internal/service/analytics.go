package service

import (
	"context"

	"fleetmetrics/internal/model"
	"fleetmetrics/internal/repository"
)

// Trend labels for the trucker distribution. The independence check takes
// priority over the dominance check.
const (
	TrendIncreasingIndependence = "Increasing independence"
	TrendCompanyDominance       = "Company dominance"
	TrendBalanced               = "Balanced"
)

// EmployeeGrowthResult summarizes active employee registrations by month.
type EmployeeGrowthResult struct {
	MonthlyRegistrations map[string]int `json:"monthly_registrations"`
	AverageGrowth        float64        `json:"average_growth"`
	Projection           float64        `json:"projection"`
}

// TruckerDistributionResult summarizes truckers by province and company.
type TruckerDistributionResult struct {
	ByProvince  map[string]int     `json:"by_province"`
	ByCompany   map[string]int     `json:"by_company"`
	Percentages map[string]float64 `json:"percentages"`
	MostCommon  string             `json:"most_common"`
	Trend       string             `json:"trend"`
}

// BusinessImpactResult carries churn and compliance rates as percentages.
type BusinessImpactResult struct {
	EmployeeChurnRate      float64 `json:"employee_churn_rate"`
	TruckerChurnRate       float64 `json:"trucker_churn_rate"`
	DocumentComplianceRate float64 `json:"document_compliance_rate"`
}

// ComplianceSnapshotResult carries raw counts only, no rates.
type ComplianceSnapshotResult struct {
	TotalEmployees      int `json:"total_employees"`
	ActiveEmployees     int `json:"active_employees"`
	TotalTruckers       int `json:"total_truckers"`
	ActiveTruckers      int `json:"active_truckers"`
	TotalDocuments      int `json:"total_documents"`
	VerifiedDocuments   int `json:"verified_documents"`
	UnverifiedDocuments int `json:"unverified_documents"`
}

// AnalyticsService defines the read-only analytics computations. Each call
// is deterministic given database state and reads from a single snapshot.
type AnalyticsService interface {
	EmployeeGrowth(ctx context.Context) (*EmployeeGrowthResult, error)
	TruckerDistribution(ctx context.Context) (*TruckerDistributionResult, error)
	BusinessImpact(ctx context.Context) (*BusinessImpactResult, error)
	ComplianceSnapshot(ctx context.Context) (*ComplianceSnapshotResult, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsService constructs a new AnalyticsService.
func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

// EmployeeGrowth groups active employees by registration month, computes the
// average monthly registration count, and projects the next month with a
// least-squares fit over the chronological series.
func (s *analyticsService) EmployeeGrowth(ctx context.Context) (*EmployeeGrowthResult, error) {
	buckets, err := s.repo.EmployeeGrowth(ctx)
	if err != nil {
		return nil, err
	}

	monthly := make(map[string]int, len(buckets))
	series := make([]float64, len(buckets))
	total := 0
	for i, b := range buckets {
		monthly[b.Month] = b.Count
		series[i] = float64(b.Count)
		total += b.Count
	}

	var avg float64
	if len(buckets) > 0 {
		avg = float64(total) / float64(len(buckets))
	}

	return &EmployeeGrowthResult{
		MonthlyRegistrations: monthly,
		AverageGrowth:        avg,
		Projection:           projectNext(series),
	}, nil
}

// TruckerDistribution groups all truckers by province and company, computes
// per-company percentages of the total population, and classifies the trend.
// With zero truckers every map is empty, most_common is empty, and the trend
// is balanced; the percentage computation is never attempted on a zero total.
func (s *analyticsService) TruckerDistribution(ctx context.Context) (*TruckerDistributionResult, error) {
	buckets, err := s.repo.TruckerBuckets(ctx)
	if err != nil {
		return nil, err
	}

	byProvince := make(map[string]int, len(buckets.ByProvince))
	for _, b := range buckets.ByProvince {
		byProvince[b.Name] = b.Count
	}

	byCompany := make(map[string]int, len(buckets.ByCompany))
	total := 0
	for _, b := range buckets.ByCompany {
		byCompany[b.Name] = b.Count
		total += b.Count
	}

	percentages := make(map[string]float64, len(byCompany))
	if total > 0 {
		for company, count := range byCompany {
			percentages[company] = round2(float64(count) / float64(total) * 100)
		}
	}

	// Company buckets arrive ordered by count descending, so the first one
	// is the most common.
	mostCommon := ""
	if len(buckets.ByCompany) > 0 {
		mostCommon = buckets.ByCompany[0].Name
	}

	trend := TrendBalanced
	if percentages[model.IndependentCompany] > 40 {
		trend = TrendIncreasingIndependence
	} else {
		for _, pct := range percentages {
			if pct > 60 {
				trend = TrendCompanyDominance
				break
			}
		}
	}

	return &TruckerDistributionResult{
		ByProvince:  byProvince,
		ByCompany:   byCompany,
		Percentages: percentages,
		MostCommon:  mostCommon,
		Trend:       trend,
	}, nil
}

// BusinessImpact computes churn rates for employees and truckers and the
// document compliance rate. Empty populations yield 0, never an error.
func (s *analyticsService) BusinessImpact(ctx context.Context) (*BusinessImpactResult, error) {
	c, err := s.repo.EntityCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &BusinessImpactResult{
		EmployeeChurnRate:      rate(c.TotalEmployees-c.ActiveEmployees, c.TotalEmployees),
		TruckerChurnRate:       rate(c.TotalTruckers-c.ActiveTruckers, c.TotalTruckers),
		DocumentComplianceRate: rate(c.VerifiedDocuments, c.TotalDocuments),
	}, nil
}

// ComplianceSnapshot returns the raw population counts.
func (s *analyticsService) ComplianceSnapshot(ctx context.Context) (*ComplianceSnapshotResult, error) {
	c, err := s.repo.EntityCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &ComplianceSnapshotResult{
		TotalEmployees:      c.TotalEmployees,
		ActiveEmployees:     c.ActiveEmployees,
		TotalTruckers:       c.TotalTruckers,
		ActiveTruckers:      c.ActiveTruckers,
		TotalDocuments:      c.TotalDocuments,
		VerifiedDocuments:   c.VerifiedDocuments,
		UnverifiedDocuments: c.TotalDocuments - c.VerifiedDocuments,
	}, nil
}

// rate returns round(100*part/total, 2), or 0 when total is 0.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}
