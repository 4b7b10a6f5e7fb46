// handlers/realtime.go - Websocket row-change feed
package handlers

import (
	"southside/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RealtimeUpgrade gates /ws to real websocket upgrade requests.
func RealtimeUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// RealtimeHandler registers the connection with the event hub and holds it
// open. Clients only receive; inbound frames are drained and ignored so
// pings and close frames are processed.
var RealtimeHandler = websocket.New(func(conn *websocket.Conn) {
	hub := services.GetHub()
	if hub == nil {
		_ = conn.Close()
		return
	}

	hub.Register(conn)
	defer func() {
		hub.Unregister(conn)
		_ = conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
})
