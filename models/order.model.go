package models

import (
	"time"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusCancelled = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the supported order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is created exactly once per successful checkout. Items are written in
// the same transaction and are immutable afterwards; status is the only field
// mutated post-creation (admin action).
type Order struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	TotalPrice      int64  `gorm:"not null" json:"total_price"`
	Status          string `gorm:"not null;default:'Pending';size:20" json:"status"`
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`
	PaymentMethod   string `gorm:"size:50" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// OrderItem snapshots the product name and price at purchase time so order
// history stays accurate even if the listing is repriced or deleted later.
// InventoryID is nullable for exactly that reason.
type OrderItem struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	OrderID     uint  `gorm:"not null;index" json:"order_id"`
	InventoryID *uint `gorm:"index" json:"inventory_id"`

	ProductName     string `gorm:"size:255;not null" json:"product_name"`
	Quantity        int    `gorm:"not null" json:"quantity"`
	PriceAtPurchase int64  `gorm:"not null" json:"price_at_purchase"`

	CreatedAt time.Time `json:"created_at"`
}
