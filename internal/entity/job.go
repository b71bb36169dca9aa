package entity

// Job is a job listing posted by a company. Rows are hard-deleted.
type Job struct {
	ID            int64    `gorm:"primaryKey" json:"id"`
	Title         string   `gorm:"not null" json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `gorm:"type:numeric" json:"equity"`
	CompanyHandle string   `gorm:"column:company_handle;not null" json:"companyHandle"`
}

func (Job) TableName() string {
	return "jobs"
}
