package config

import (
	"log"

	"github.com/kiyuzo/shop-tcg/models"
	"github.com/kiyuzo/shop-tcg/utils"

	"gorm.io/gorm"
)

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "admin",
			Email:    "admin@example.com",
			Password: password,
			Role:     models.RoleAdmin,
		},
		{
			Username: "buyer1",
			Email:    "buyer1@example.com",
			Password: password,
			Role:     models.RoleBuyer,
		},
	}

	for _, user := range users {
		var existing models.User
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ User seeding complete.")
}

type seedCard struct {
	product  models.Product
	listings []models.InventoryListing
}

func SeedCatalog(db *gorm.DB) {
	log.Println("🌱 Seeding catalog...")

	apiID := func(s string) *string { return &s }

	cards := []seedCard{
		{
			product: models.Product{
				APICardID: apiID("scryfall-ff21ab8c"),
				Name:      "Black Lotus",
				ImageURL:  "/uploads/cards/black-lotus.jpg",
				SetName:   "Limited Edition Alpha",
				Rarity:    "Rare",
				Game:      "MTG",
			},
			listings: []models.InventoryListing{
				{Price: 125000000, Stock: 1, Condition: models.ConditionLightlyPlayed},
			},
		},
		{
			product: models.Product{
				APICardID: apiID("pokemontcg-base1-4"),
				Name:      "Charizard",
				ImageURL:  "/uploads/cards/charizard.jpg",
				SetName:   "Base Set",
				Rarity:    "Rare Holo",
				Game:      "Pokemon",
			},
			listings: []models.InventoryListing{
				{Price: 45000000, Stock: 2, Condition: models.ConditionNearMint},
				{Price: 21000000, Stock: 5, Condition: models.ConditionPlayed},
			},
		},
		{
			product: models.Product{
				APICardID: apiID("ygoprodeck-89631139"),
				Name:      "Blue-Eyes White Dragon",
				ImageURL:  "/uploads/cards/blue-eyes.jpg",
				SetName:   "Legend of Blue Eyes",
				Rarity:    "Ultra Rare",
				Game:      "Yu-Gi-Oh!",
			},
			listings: []models.InventoryListing{
				{Price: 3500000, Stock: 4, Condition: models.ConditionNearMint},
				{Price: 1500000, Stock: 12, Condition: models.ConditionLightlyPlayed},
			},
		},
		{
			product: models.Product{
				APICardID: apiID("optcg-op01-001"),
				Name:      "Roronoa Zoro (Leader)",
				ImageURL:  "/uploads/cards/zoro-leader.jpg",
				SetName:   "Romance Dawn",
				Rarity:    "Leader",
				Game:      "One Piece",
			},
			listings: []models.InventoryListing{
				{Price: 250000, Stock: 20, Condition: models.ConditionMint},
			},
		},
	}

	for _, card := range cards {
		var existing models.Product
		err := db.Where("api_card_id = ?", card.product.APICardID).First(&existing).Error
		if err == nil {
			log.Printf("Product already exists: %s", card.product.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Failed to check product %s: %v", card.product.Name, err)
			continue
		}

		card.product.Listings = card.listings
		if err := db.Create(&card.product).Error; err != nil {
			log.Printf("Failed to seed product %s: %v", card.product.Name, err)
			continue
		}
		log.Printf("Product seeded: %s (%d listings)", card.product.Name, len(card.listings))
	}

	log.Println("✅ Catalog seeding complete.")
}
