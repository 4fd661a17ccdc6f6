package models

import (
	"time"

	"gorm.io/datatypes"
)

// Listing statuses. Soft delete flips Status to StatusDeleted; the row stays
// addressable by id but is excluded from default queries.
const (
	ListingStatusActive   = "active"
	ListingStatusPending  = "pending"
	ListingStatusSold     = "sold"
	ListingStatusReserved = "reserved"
	ListingStatusDeleted  = "deleted"
)

// Listing is a user-submitted marketplace sale posting.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description *string        `gorm:"column:description;type:text" json:"description"`
	Price       float64        `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	GameTopic   string         `gorm:"column:game_topic;type:varchar(100);not null;index" json:"game_topic"`
	Images      datatypes.JSON `gorm:"column:images" json:"images"`
	UserID      uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	Status      string         `gorm:"column:status;type:varchar(50);not null;default:active;index" json:"status"`
	IsFeatured  bool           `gorm:"column:is_featured;default:false" json:"is_featured"`
	Views       int            `gorm:"column:views;default:0" json:"views"`
	Likes       int            `gorm:"column:likes;default:0" json:"likes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}
