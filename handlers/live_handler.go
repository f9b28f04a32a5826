package handlers

import (
	"github.com/kiyuzo/shop-tcg/internal/live"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type LiveHandler struct {
	Hub *live.Hub
}

func NewLiveHandler(hub *live.Hub) *LiveHandler {
	return &LiveHandler{Hub: hub}
}

// WebSocketUpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *LiveHandler) WebSocketUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler for the stock update feed
func (h *LiveHandler) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		client := live.NewClient(h.Hub, c)

		client.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
