package handlers

import (
	"errors"
	"strconv"

	"github.com/kiyuzo/shop-tcg/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{DB: db}
}

// GetWishlist - GET /api/wishlist
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var items []models.WishlistItem
	if err := h.DB.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch wishlist"})
	}

	return c.JSON(fiber.Map{"data": items})
}

// AddWishlistRequest
type AddWishlistRequest struct {
	ProductID uint `json:"product_id"`
}

// AddItem - POST /api/wishlist
//
// Adding the same product twice is a no-op: the existing entry is returned.
func (h *WishlistHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}

	var item models.WishlistItem
	err := h.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	if err == nil {
		return c.JSON(fiber.Map{"message": "Already in wishlist", "data": item})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update wishlist"})
	}

	item = models.WishlistItem{UserID: userID, ProductID: req.ProductID}
	if err := h.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update wishlist"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to wishlist", "data": item})
}

// RemoveItem - DELETE /api/wishlist/:productId
func (h *WishlistHandler) RemoveItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid product id"})
	}

	result := h.DB.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.WishlistItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update wishlist"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Wishlist item not found"})
	}

	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
