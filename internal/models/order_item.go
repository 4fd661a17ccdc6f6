package models

// OrderItem is a denormalized line of an order: name, unit price and image
// are copied at purchase time so historical orders stay stable when the live
// catalog changes or a product is deleted.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"column:order_id;not null;index" json:"order_id"`
	ItemType  string  `gorm:"column:item_type;type:varchar(20);not null" json:"item_type"`
	ItemID    uint    `gorm:"column:item_id;not null" json:"item_id"`
	Name      string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	UnitPrice float64 `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	ImageURL  *string `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	Quantity  int     `gorm:"column:quantity;default:1" json:"quantity"`
	Subtotal  float64 `gorm:"column:subtotal;type:decimal(10,2);not null" json:"subtotal"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
