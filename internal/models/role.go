package models

// Role names are compared as strings ("admin", "user") at the endpoint layer.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;not null;uniqueIndex" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}
