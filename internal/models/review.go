package models

import "time"

// Review references exactly one content item via the item_type discriminator.
// Rating must stay inside [1, 5]; IsApproved is the moderation gate.
type Review struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;not null;index;uniqueIndex:idx_reviews_user_item" json:"user_id"`
	ItemType     string    `gorm:"column:item_type;type:varchar(20);not null;uniqueIndex:idx_reviews_user_item" json:"item_type"`
	ItemID       uint      `gorm:"column:item_id;not null;uniqueIndex:idx_reviews_user_item" json:"item_id"`
	Rating       int       `gorm:"column:rating;not null" json:"rating"`
	Title        *string   `gorm:"column:title;type:varchar(255)" json:"title"`
	Comment      *string   `gorm:"column:comment;type:text" json:"comment"`
	IsVerified   bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	IsApproved   bool      `gorm:"column:is_approved;default:true" json:"is_approved"`
	HelpfulCount int       `gorm:"column:helpful_count;default:0" json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
