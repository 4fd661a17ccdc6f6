package models

import "time"

// AuthorListing is a creator-original content posting, distinct from general
// marketplace listings. Shares the listing status lifecycle.
type AuthorListing struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Price      float64   `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	GameTopics string    `gorm:"column:game_topics;type:varchar(100);not null;index" json:"game_topics"`
	ImageURL   *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	UserID     uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Status     string    `gorm:"column:status;type:varchar(50);not null;default:active;index" json:"status"`
	Views      int       `gorm:"column:views;default:0" json:"views"`
	Likes      int       `gorm:"column:likes;default:0" json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (AuthorListing) TableName() string {
	return "author_listings"
}
