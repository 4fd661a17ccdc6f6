package models

import "time"

// Cart is one-per-user. The unique index on user_id makes get-or-create safe
// under concurrent first-time access: the loser of the race falls back to the
// winner's row on a duplicated-key error.
type Cart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}
