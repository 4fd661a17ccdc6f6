package models

import "time"

// CartItem is one line of a cart. The referenced content is carried as a
// discriminator (item_type) plus a generic item_id, so a line references
// exactly one of product / listing / author_listing by construction.
//
// Lines owned by an authenticated user belong to a Cart. Guest lines have a
// nil CartID and are tagged with the cart_session_id instead; a merge after
// login re-owns or folds them into the user's cart.
//
// Price is the unit price at add-time; cart totals never re-read the catalog.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CartID        *uint     `gorm:"column:cart_id;index;uniqueIndex:idx_cart_items_line" json:"cart_id"`
	CartSessionID *string   `gorm:"column:cart_session_id;type:varchar(64);index" json:"cart_session_id,omitempty"`
	ItemType      string    `gorm:"column:item_type;type:varchar(20);not null;uniqueIndex:idx_cart_items_line" json:"item_type"`
	ItemID        uint      `gorm:"column:item_id;not null;uniqueIndex:idx_cart_items_line" json:"item_id"`
	Quantity      int       `gorm:"column:quantity;default:1" json:"quantity"`
	Price         float64   `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	CreatedAt     time.Time `json:"created_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
