package entity

// Company is referenced by jobs through its handle.
type Company struct {
	Handle       string  `gorm:"primaryKey" json:"handle"`
	Name         string  `gorm:"not null;unique" json:"name"`
	NumEmployees *int    `gorm:"column:num_employees" json:"numEmployees"`
	Description  string  `gorm:"not null" json:"description"`
	LogoURL      *string `gorm:"column:logo_url" json:"logoUrl"`
}

func (Company) TableName() string {
	return "companies"
}
