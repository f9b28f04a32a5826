package models

import (
	"time"
)

// Card condition grades, best first.
const (
	ConditionMint          = "Mint"
	ConditionNearMint      = "Near Mint"
	ConditionLightlyPlayed = "Lightly Played"
	ConditionPlayed        = "Played"
	ConditionDamaged       = "Damaged"
)

// InventoryListing is a sellable offer of a product at a specific condition.
// Price is an integer in minor currency units; never floating point.
type InventoryListing struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Price     int64  `gorm:"not null" json:"price"`
	Stock     int    `gorm:"column:stock_quantity;not null;default:0" json:"stock_quantity"`
	Condition string `gorm:"size:30;default:'Near Mint'" json:"condition"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
