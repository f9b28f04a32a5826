package models

import (
	"time"
)

// Product is a catalog entry for a single card. Stock and pricing live on
// InventoryListing; a product can be offered at several condition tiers.
type Product struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	APICardID *string `gorm:"unique;size:100" json:"api_card_id"` // Scryfall / PokemonTCG reference
	Name      string  `gorm:"size:255;not null;index" json:"name"`
	ImageURL  string  `json:"image_url"`
	SetName   string  `gorm:"size:100" json:"set_name"`
	Rarity    string  `gorm:"size:50" json:"rarity"`
	Game      string  `gorm:"size:50;index" json:"game"` // MTG, Pokemon, Yu-Gi-Oh!, One Piece, ...

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Listings []InventoryListing `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"listings,omitempty"`
}
