package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/auth"
	"chatterbox/server/internal/handlers"
	"chatterbox/server/internal/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, h *handlers.Handler, tokens *auth.Tokens) {
	protected := middleware.Protected(tokens)

	// Health check (public)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", middleware.StrictRateLimiter(), h.Register)
	authGroup.Post("/login", middleware.StrictRateLimiter(), h.Login)
	authGroup.Post("/logout", protected, h.Logout)
	authGroup.Get("/me", protected, h.GetMe)

	// Chat routes (protected)
	chat := app.Group("/chat", protected)
	chat.Get("/private/:userId", h.GetPrivateMessages)
	chat.Post("/send", h.SendMessage)
	chat.Get("/group/:groupId", h.GetGroupMessages)

	// User routes (protected)
	users := app.Group("/users", protected)
	users.Get("/status", h.GetUsersStatus)
	users.Put("/update-status", h.UpdateStatus)
	users.Post("/group/create", h.CreateGroup)

	// Group membership routes (protected)
	groups := app.Group("/groups", protected)
	groups.Get("/", h.GetGroups)
	groups.Get("/:groupId/members", h.GetGroupMembers)
	groups.Post("/:groupId/members", h.AddGroupMember)
	groups.Delete("/:groupId/members/:userId", h.RemoveGroupMember)

	// WebSocket (protected; invalid identity aborts the transport)
	app.Get("/ws", protected, h.WebSocketUpgrade, websocket.New(h.WebSocket))
	app.Get("/ws/stats", protected, h.WebSocketStats)
}
