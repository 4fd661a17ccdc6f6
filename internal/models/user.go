package models

import "time"

// User is a registered account. Role determines admin vs. regular access
// and is checked by name comparison at the handler layer.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Email          string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	RoleID         *uint     `gorm:"column:role_id" json:"role_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
