// Package notify pushes order events to connected admin panels over
// WebSocket, so a new order shows up without polling.
package notify

import (
	"encoding/json"
	"log"
	"sync"

	"reidossalgados/models"
)

// Event is the wire payload sent to admin clients.
type Event struct {
	Action  string  `json:"action"` // "order-created" or "order-updated"
	OrderID string  `json:"orderId"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

type Client struct {
	Send chan []byte
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
					// Slow consumer: drop it rather than block the hub.
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop disconnects every client and ends Run.
func (h *Hub) Stop() {
	close(h.done)
}

// OrderCreated fans a new order out to all connected admin panels.
func (h *Hub) OrderCreated(order models.Order) {
	h.send(Event{
		Action:  "order-created",
		OrderID: order.OrderID,
		Status:  order.Status,
		Total:   order.Total.Reais(),
	})
}

// OrderUpdated announces a status change.
func (h *Hub) OrderUpdated(order models.Order) {
	h.send(Event{
		Action:  "order-updated",
		OrderID: order.OrderID,
		Status:  order.Status,
		Total:   order.Total.Reais(),
	})
}

func (h *Hub) send(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("notify marshal error:", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}
