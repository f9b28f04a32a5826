// Package cart maintains each user's pending cart. Items are deduplicated by
// inventory listing (product + condition identity) and quantities are clamped
// to the listing's last-known stock. The ceiling is advisory only; checkout
// re-validates stock inside its transaction.
package cart

import (
	"errors"

	"github.com/kiyuzo/shop-tcg/models"

	"gorm.io/gorm"
)

var (
	ErrListingNotFound = errors.New("inventory listing not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrOutOfStock      = errors.New("listing is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// findOrCreate returns the user's cart, creating it on first use.
func (s *Service) findOrCreate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = s.DB.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem merges quantity into an existing line for the same listing, or
// appends a new line. The resulting quantity never exceeds current stock.
func (s *Service) AddItem(userID, inventoryID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var listing models.InventoryListing
	if err := s.DB.First(&listing, inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	cart, err := s.findOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.DB.Where("cart_id = ? AND inventory_id = ?", cart.ID, inventoryID).First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			CartID:      cart.ID,
			InventoryID: inventoryID,
			Quantity:    clamp(quantity, listing.Stock),
		}
		if err := s.DB.Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Quantity = clamp(item.Quantity+quantity, listing.Stock)
		if err := s.DB.Save(&item).Error; err != nil {
			return nil, err
		}
	}

	return &item, nil
}

// UpdateQuantity clamps the new quantity to current stock. A quantity of zero
// or less removes the line; the returned item is nil in that case.
func (s *Service) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		if err := s.DB.Delete(item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	var listing models.InventoryListing
	if err := s.DB.First(&listing, item.InventoryID).Error; err != nil {
		return nil, err
	}

	item.Quantity = clamp(quantity, listing.Stock)
	if err := s.DB.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one line from the user's cart.
func (s *Service) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.DB.Delete(item).Error
}

// Items returns the cart lines hydrated with listing and product data.
func (s *Service) Items(userID uint) ([]models.CartItem, error) {
	cart, err := s.findOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	err = s.DB.Preload("Listing.Product").
		Where("cart_id = ?", cart.ID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// TotalPrice sums price x quantity over the cart in minor currency units.
func (s *Service) TotalPrice(userID uint) (int64, error) {
	items, err := s.Items(userID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, item := range items {
		total += item.Listing.Price * int64(item.Quantity)
	}
	return total, nil
}

// Clear empties the user's cart.
func (s *Service) Clear(userID uint) error {
	cart, err := s.findOrCreate(userID)
	if err != nil {
		return err
	}
	return s.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

func (s *Service) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	cart, err := s.findOrCreate(userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func clamp(quantity, ceiling int) int {
	if quantity > ceiling {
		return ceiling
	}
	return quantity
}
