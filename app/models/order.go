package models

import "gorm.io/gorm"

// Order status lifecycle values.
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderProcessing,
	OrderShipped, OrderDelivered, OrderCancelled,
}

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CustomerInfo is the guest-checkout contact block embedded in an order.
// There are no customer accounts; each order carries its own copy.
type CustomerInfo struct {
	CustomerName    string `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail   string `gorm:"size:255;not null;index" json:"customer_email"`
	CustomerPhone   string `gorm:"size:50" json:"customer_phone"`
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`
}

// Order is a placed customer order with its line items.
type Order struct {
	gorm.Model
	CustomerInfo
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      string      `gorm:"size:50;not null;default:pending;index" json:"status"`
	Notes       string      `gorm:"type:text" json:"notes"`
	Items       []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one product line within an order. Price fields are snapshots
// taken at placement time; later product edits do not affect them.
type OrderItem struct {
	gorm.Model
	OrderID      uint    `gorm:"not null;index" json:"order_id"`
	ProductID    uint    `gorm:"not null;index" json:"product_id"`
	ProductName  string  `gorm:"size:255;not null" json:"product_name"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	PricePerUnit float64 `gorm:"not null" json:"price_per_unit"`
	TotalPrice   float64 `gorm:"not null" json:"total_price"`
}
