// Package live pushes inventory changes to connected storefront clients so
// their cached stock ceilings stay fresh. The feed is one-way: whatever a
// client sends is discarded.
package live

import (
	"encoding/json"
	"log"

	"github.com/kiyuzo/shop-tcg/internal/checkout"
)

// Hub maintains the set of active clients and broadcasts stock updates to
// them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound messages to every client.
	Broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("live: client %s connected (%d total)", client.ID, len(h.clients))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Printf("live: client %s disconnected (%d total)", client.ID, len(h.clients))
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

type stockEvent struct {
	Type string `json:"type"`
	checkout.StockUpdate
}

// PublishStockUpdate satisfies checkout.Notifier. Safe to call from any
// request goroutine once Run is started.
func (h *Hub) PublishStockUpdate(update checkout.StockUpdate) {
	payload, err := json.Marshal(stockEvent{Type: "stock_update", StockUpdate: update})
	if err != nil {
		log.Printf("live: failed to marshal stock update: %v", err)
		return
	}
	h.Broadcast <- payload
}
