package models

import "time"

// Favorite marks one content item as favorited by one user. Uniqueness of
// (user, item) is a real composite index, not just an application pre-check.
type Favorite struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"column:user_id;not null;index;uniqueIndex:idx_favorites_user_item" json:"user_id"`
	ItemType string    `gorm:"column:item_type;type:varchar(20);not null;uniqueIndex:idx_favorites_user_item" json:"item_type"`
	ItemID   uint      `gorm:"column:item_id;not null;uniqueIndex:idx_favorites_user_item" json:"item_id"`
	AddedAt  time.Time `gorm:"column:added_at;autoCreateTime" json:"added_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
