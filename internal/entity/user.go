package entity

type User struct {
	Username  string `gorm:"primaryKey" json:"username"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string `gorm:"column:last_name;not null" json:"lastName"`
	Email     string `gorm:"not null" json:"email"`
}

func (User) TableName() string {
	return "users"
}
