package dto

import "jobly/pkg/sqlbuilder"

// CreateJobRequest is the DTO for creating a new job.
type CreateJobRequest struct {
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}

// JobFilter narrows FindAll. Zero values impose no constraint.
type JobFilter struct {
	Title     string `json:"title"`
	MinSalary *int   `json:"minSalary"`
	HasEquity bool   `json:"hasEquity"`
}

// UpdateJobRequest is a partial update; nil fields are left unchanged.
type UpdateJobRequest struct {
	Title         *string  `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle *string  `json:"companyHandle"`
}

// JobColumns translates update field names to their column names.
var JobColumns = map[string]string{
	"companyHandle": "company_handle",
}

// Fields lists the fields present in the request in a fixed order.
func (r UpdateJobRequest) Fields() []sqlbuilder.Field {
	var fields []sqlbuilder.Field
	if r.Title != nil {
		fields = append(fields, sqlbuilder.Field{Name: "title", Value: *r.Title})
	}
	if r.Salary != nil {
		fields = append(fields, sqlbuilder.Field{Name: "salary", Value: *r.Salary})
	}
	if r.Equity != nil {
		fields = append(fields, sqlbuilder.Field{Name: "equity", Value: *r.Equity})
	}
	if r.CompanyHandle != nil {
		fields = append(fields, sqlbuilder.Field{Name: "companyHandle", Value: *r.CompanyHandle})
	}
	return fields
}

// JobResponse is the DTO for responses containing job details.
type JobResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
}
