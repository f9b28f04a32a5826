package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/kiyuzo/shop-tcg/internal/cart"
	"github.com/kiyuzo/shop-tcg/internal/checkout"
	"github.com/kiyuzo/shop-tcg/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB     *gorm.DB
	Engine *checkout.Engine
	Cart   *cart.Service
}

func NewOrderHandler(db *gorm.DB, engine *checkout.Engine, cartSvc *cart.Service) *OrderHandler {
	return &OrderHandler{DB: db, Engine: engine, Cart: cartSvc}
}

// PlaceOrderRequest mirrors the checkout form payload.
type PlaceOrderRequest struct {
	OrderItems      []checkout.LineRequest   `json:"orderItems"`
	ShippingAddress checkout.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                   `json:"paymentMethod"`
	TotalPrice      int64                    `json:"totalPrice"`
}

// CreateOrder - POST /api/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if len(req.OrderItems) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "No order items"})
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	order, err := h.Engine.PlaceOrder(userID, req.OrderItems, req.ShippingAddress, req.TotalPrice, req.PaymentMethod)
	if err != nil {
		return h.orderError(c, err)
	}

	// The server-side cart is spent once the order exists. Failure to clear
	// never fails the checkout response.
	if err := h.Cart.Clear(userID); err != nil {
		log.Printf("order %d: failed to clear cart for user %d: %v", order.ID, userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// GetOrder - GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	role, _ := c.Locals("role").(string)

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	var order models.Order
	if err := h.DB.Preload("Items").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}

	if order.UserID != userID && role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not authorized to view this order"})
	}

	return c.JSON(fiber.Map{"data": order})
}

// GetMyOrders - GET /api/orders/user/my-orders
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var orders []models.Order
	if err := h.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not fetch orders"})
	}

	return c.JSON(fiber.Map{"data": orders})
}

// UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus - PUT /api/orders/:id/status (Admin)
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order id"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}
	if !models.ValidOrderStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid order status"})
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not update order"})
	}

	return c.JSON(fiber.Map{"message": "Order updated", "data": order})
}

// orderError maps engine errors onto the HTTP taxonomy. The message text is
// surfaced verbatim for expected outcomes; infra failures get a generic 500.
func (h *OrderHandler) orderError(c *fiber.Ctx, err error) error {
	var notFound *checkout.ProductNotFoundError
	var stock *checkout.InsufficientStockError

	switch {
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrNegativeTotal):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Checkout is temporarily unavailable"})
	}
}
