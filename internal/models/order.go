package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order statuses. Cancel is a status transition, never a row delete.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Order is a snapshot of a completed checkout. Immutable after creation
// except for status and payment fields.
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	TotalAmount   float64        `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`
	Status        string         `gorm:"column:status;type:varchar(50);not null;default:pending;index" json:"status"`
	CustomerName  string         `gorm:"column:customer_name;type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string         `gorm:"column:customer_email;type:varchar(100);not null" json:"customer_email"`
	PaymentMethod string         `gorm:"column:payment_method;type:varchar(50);not null" json:"payment_method"`
	PaymentStatus string         `gorm:"column:payment_status;type:varchar(50);default:unpaid" json:"payment_status"`
	PaymentData   datatypes.JSON `gorm:"column:payment_data" json:"payment_data,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
