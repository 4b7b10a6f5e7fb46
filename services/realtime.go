// services/realtime.go - Row-change event hub for websocket subscribers
package services

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one row change pushed to subscribers. Consumers must treat every
// event as an idempotent upsert/delete against their local view state; no
// ordering is guaranteed across connections.
type Event struct {
	Table  string      `json:"table"`
	Action string      `json:"action"` // insert, update, delete
	Row    interface{} `json:"row"`
}

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
}

const textMessage = 1 // websocket.TextMessage

// Hub fans row-change events out to connected clients. Writes go out under
// the lock so a single connection never sees interleaved frames; clients
// whose writes fail are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[Conn]struct{}
}

var hub *Hub

// InitHub initializes the singleton event hub.
func InitHub() {
	hub = NewHub()
}

// GetHub returns the initialized hub.
func GetHub() *Hub {
	return hub
}

func NewHub() *Hub {
	return &Hub{clients: make(map[Conn]struct{})}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast pushes an event to every subscriber.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal realtime event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(textMessage, payload); err != nil {
			delete(h.clients, c)
		}
	}
}

// Publish is a convenience wrapper on the singleton hub; safe to call before
// InitHub (events are simply dropped).
func Publish(table, action string, row interface{}) {
	if hub == nil {
		return
	}
	hub.Broadcast(Event{Table: table, Action: action, Row: row})
}
