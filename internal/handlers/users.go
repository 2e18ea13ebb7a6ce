package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chatterbox/server/internal/middleware"
)

// UpdateStatusRequest represents the update-status request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateGroupRequest represents the create group request body
type CreateGroupRequest struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	MemberIDs   []uuid.UUID `json:"memberIds"`
}

// GetUsersStatus returns the status projection of every user.
func (h *Handler) GetUsersStatus(c *fiber.Ctx) error {
	users, err := h.chat.ListUsers(c.Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(users)
}

// UpdateStatus sets the caller's presence status.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.chat.UpdateStatus(c.Context(), userID, req.Status); err != nil {
		return badRequest(c, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Status updated successfully"})
}

// CreateGroup creates a group with the caller as its sole admin.
func (h *Handler) CreateGroup(c *fiber.Ctx) error {
	creatorID := middleware.UserID(c)

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if req.Name == "" {
		return badRequest(c, "group name is required")
	}

	group, err := h.chat.CreateGroup(c.Context(), creatorID, req.Name, req.Description, req.MemberIDs)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(group)
}
