package models

import (
	"time"
)

// Cart holds a user's pending items. One cart per user; items merge by
// inventory listing so a product+condition pair never appears twice.
type Cart struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"unique;not null" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

type CartItem struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CartID      uint `gorm:"not null;index;uniqueIndex:idx_cart_listing" json:"cart_id"`
	InventoryID uint `gorm:"not null;uniqueIndex:idx_cart_listing" json:"inventory_id"`
	Quantity    int  `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing InventoryListing `gorm:"foreignKey:InventoryID" json:"listing,omitempty"`
}

// WishlistItem pins a product (not a listing) to a user's wishlist.
type WishlistItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;index;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`

	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
