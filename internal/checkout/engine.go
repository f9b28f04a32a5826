// Package checkout converts a submitted cart into a durable order while
// decrementing matching inventory, all within a single all-or-nothing
// database transaction.
package checkout

import (
	"errors"
	"log"
	"strings"

	"github.com/kiyuzo/shop-tcg/models"

	"gorm.io/gorm"
)

// LineRequest is one cart entry as submitted by the client.
type LineRequest struct {
	ProductID uint `json:"product"`
	Quantity  int  `json:"quantity"`
}

// ShippingAddress is the structured postal address from the checkout form.
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Validate reports the first missing field, if any.
func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"street", a.Street},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"country", a.Country},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errors.New("shipping address is missing field: " + f.name)
		}
	}
	return nil
}

// Flatten renders the address as stored on the order row. Field order is
// fixed: street, city, state, zip, country.
func (a ShippingAddress) Flatten() string {
	return strings.Join([]string{a.Street, a.City, a.State, a.ZipCode, a.Country}, ", ")
}

// StockUpdate describes a listing whose stock changed.
type StockUpdate struct {
	ProductID   uint   `json:"product_id"`
	InventoryID uint   `json:"inventory_id"`
	Condition   string `json:"condition"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock_quantity"`
}

// Notifier receives stock changes after they have been committed.
type Notifier interface {
	PublishStockUpdate(update StockUpdate)
}

// Engine runs the order-placement transaction. Callers must have already
// authenticated userID; the engine treats it as trusted input.
type Engine struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewEngine(db *gorm.DB, notifier Notifier) *Engine {
	return &Engine{DB: db, Notifier: notifier}
}

// PlaceOrder atomically validates stock, writes the order header and its
// items, and decrements inventory. On any failure no partial state survives:
// the whole transaction rolls back.
//
// Each line consumes the cheapest available listing for its product. When a
// product is stocked at several condition tiers, checkout always targets the
// lowest-priced one; callers cannot pick a tier.
func (e *Engine) PlaceOrder(userID uint, lines []LineRequest, addr ShippingAddress, totalPrice int64, paymentMethod string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if totalPrice < 0 {
		return nil, ErrNegativeTotal
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	order := models.Order{
		UserID:          userID,
		TotalPrice:      totalPrice,
		Status:          models.OrderStatusPending,
		ShippingAddress: addr.Flatten(),
		PaymentMethod:   paymentMethod,
	}

	var updates []StockUpdate

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var lineSum int64
		for _, line := range lines {
			var listing models.InventoryListing
			err := tx.Preload("Product").
				Where("product_id = ?", line.ProductID).
				Order("price ASC").
				First(&listing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: line.ProductID}
			}
			if err != nil {
				return err
			}

			if listing.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID:   line.ProductID,
					ProductName: listing.Product.Name,
					Requested:   line.Quantity,
					Available:   listing.Stock,
				}
			}

			inventoryID := listing.ID
			item := models.OrderItem{
				OrderID:         order.ID,
				InventoryID:     &inventoryID,
				ProductName:     listing.Product.Name,
				Quantity:        line.Quantity,
				PriceAtPurchase: listing.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			if err := tx.Model(&models.InventoryListing{}).
				Where("id = ?", listing.ID).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
				return err
			}

			lineSum += listing.Price * int64(line.Quantity)
			updates = append(updates, StockUpdate{
				ProductID:   listing.ProductID,
				InventoryID: listing.ID,
				Condition:   listing.Condition,
				Price:       listing.Price,
				Stock:       listing.Stock - line.Quantity,
			})
		}

		// The client-supplied total is stored as-is; a mismatch against the
		// line sum is logged so it stays observable.
		if lineSum != totalPrice {
			log.Printf("order %d: client total %d differs from line-item sum %d", order.ID, totalPrice, lineSum)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var placed models.Order
	if err := e.DB.Preload("Items").First(&placed, order.ID).Error; err != nil {
		return nil, err
	}

	if e.Notifier != nil {
		for _, u := range updates {
			e.Notifier.PublishStockUpdate(u)
		}
	}

	return &placed, nil
}
