package model

// IndependentCompany is the bucket used for truckers without a company.
const IndependentCompany = "Independent"

// Trucker is a truck driver. CompanyName is nil for independents; the
// analytics layer normalizes that to IndependentCompany.
type Trucker struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CompanyName     *string `json:"company_name,omitempty"`
	ProvinceOfIssue string  `json:"province_of_issue"`
	IsArchived      bool    `json:"is_archived"`
}
