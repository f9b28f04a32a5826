package models

import (
	"time"
)

// Review is a buyer's rating of a product. One review per user per product.
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID uint   `gorm:"not null;index;uniqueIndex:idx_review_user_product" json:"product_id"`
	Rating    int    `gorm:"not null" json:"rating"` // 1..5
	Title     string `gorm:"size:100" json:"title"`
	Comment   string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
