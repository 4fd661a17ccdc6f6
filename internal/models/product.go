package models

// Product is a catalog item managed by admins. Soft-deleted via IsActive;
// Popularity is mutated only through increment calls.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Category    string  `gorm:"column:category;type:varchar(100);not null;index" json:"category"`
	ImageURL    *string `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	Popularity  int     `gorm:"column:popularity;default:0" json:"popularity"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Product) TableName() string {
	return "products"
}
