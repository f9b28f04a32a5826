package handlers

import (
	"errors"
	"strings"

	"github.com/kiyuzo/shop-tcg/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type NewsletterHandler struct {
	DB *gorm.DB
}

func NewNewsletterHandler(db *gorm.DB) *NewsletterHandler {
	return &NewsletterHandler{DB: db}
}

// SubscribeRequest
type SubscribeRequest struct {
	Email string `json:"email"`
}

// Subscribe - POST /api/newsletter/subscribe
//
// Idempotent: subscribing an already-known email succeeds.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "A valid email is required"})
	}

	var existing models.Subscriber
	err := h.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"message": "Successfully subscribed!"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not subscribe"})
	}

	if err := h.DB.Create(&models.Subscriber{Email: email}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Could not subscribe"})
	}

	return c.JSON(fiber.Map{"message": "Successfully subscribed!"})
}
