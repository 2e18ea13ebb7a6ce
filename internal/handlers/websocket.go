package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chatterbox/server/internal/ws"
)

// WebSocketUpgrade rejects plain HTTP requests on the ws route.
func (h *Handler) WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}

	return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
		"message": "WebSocket upgrade required",
	})
}

// WebSocket runs one client connection. An upgrade that arrives without
// a verified identity aborts the transport; no binding is created.
func (h *Handler) WebSocket(c *websocket.Conn) {
	userID, ok := c.Locals("userID").(uuid.UUID)
	if !ok {
		c.Close()
		return
	}
	userName, _ := c.Locals("userName").(string)

	client := ws.NewClient(userID, userName, c, h.hub, h.chat)

	h.hub.Register <- client

	go client.WritePump()
	client.ReadPump() // blocks until the connection closes
}

// WebSocketStats reports live connection counts, for debugging.
func (h *Handler) WebSocketStats(c *fiber.Ctx) error {
	registry := h.hub.Registry()
	return c.JSON(fiber.Map{
		"onlineCount": registry.Count(),
		"userIds":     registry.OnlineIDs(),
	})
}
