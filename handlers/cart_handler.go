package handlers

import (
	"errors"
	"strconv"

	"github.com/kiyuzo/shop-tcg/internal/cart"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *cart.Service
}

func NewCartHandler(cartSvc *cart.Service) *CartHandler {
	return &CartHandler{Cart: cartSvc}
}

// GetCart - GET /api/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	items, err := h.Cart.Items(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch cart"})
	}
	total, err := h.Cart.TotalPrice(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch cart"})
	}

	return c.JSON(fiber.Map{
		"data":        items,
		"total_price": total,
	})
}

// AddCartItemRequest
type AddCartItemRequest struct {
	InventoryID uint `json:"inventory_id"`
	Quantity    int  `json:"quantity"`
}

// AddItem - POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	item, err := h.Cart.AddItem(userID, req.InventoryID, req.Quantity)
	if err != nil {
		return h.cartError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Item added to cart", "data": item})
}

// UpdateCartItemRequest
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem - PUT /api/cart/items/:id
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid cart item id"})
	}

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	item, err := h.Cart.UpdateQuantity(userID, uint(id), req.Quantity)
	if err != nil {
		return h.cartError(c, err)
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Item removed from cart"})
	}

	return c.JSON(fiber.Map{"message": "Cart updated", "data": item})
}

// RemoveItem - DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid cart item id"})
	}

	if err := h.Cart.RemoveItem(userID, uint(id)); err != nil {
		return h.cartError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// ClearCart - DELETE /api/cart
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	if err := h.Cart.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not clear cart"})
	}

	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

func (h *CartHandler) cartError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cart.ErrListingNotFound), errors.Is(err, cart.ErrItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, cart.ErrOutOfStock), errors.Is(err, cart.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update cart"})
	}
}
