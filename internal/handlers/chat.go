package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chatterbox/server/internal/middleware"
)

// SendMessageRequest represents the send message request body.
// Exactly one of ReceiverID and GroupID must be set.
type SendMessageRequest struct {
	ReceiverID *uuid.UUID `json:"receiverId,omitempty"`
	GroupID    *uuid.UUID `json:"groupId,omitempty"`
	Content    string     `json:"content"`
	Type       string     `json:"type"`
	FileURL    *string    `json:"fileUrl,omitempty"`
}

// SendMessage persists a message and fans it out to live recipients.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	senderID := middleware.UserID(c)

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Content == "" {
		return badRequest(c, "content is required")
	}

	message, err := h.chat.Send(c.Context(), senderID, req.ReceiverID, req.GroupID, req.Content, req.Type, req.FileURL)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(message)
}

// GetPrivateMessages returns the full conversation between the caller
// and another user, ascending by timestamp.
func (h *Handler) GetPrivateMessages(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	messages, err := h.chat.PrivateHistory(c.Context(), userID, otherID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(messages)
}

// GetGroupMessages returns the full message history of a group.
func (h *Handler) GetGroupMessages(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "invalid group id")
	}

	messages, err := h.chat.GroupHistory(c.Context(), groupID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(messages)
}
