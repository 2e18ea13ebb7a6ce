package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/middleware"
)

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration and returns a session token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.UserName == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "userName, email, and password are required")
	}

	token, user, err := h.chat.Register(c.Context(), req.UserName, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.ToDto(),
	})
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	token, user, err := h.chat.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.ToDto(),
	})
}

// GetMe returns the authenticated caller's own account.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.chat.GetUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}

// Logout is stateless; the client drops the token. The server only
// flips the presence row to offline.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.chat.Logout(c.Context(), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
