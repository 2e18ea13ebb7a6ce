package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"chatterbox/server/internal/middleware"
)

// AddMemberRequest represents the add member request body
type AddMemberRequest struct {
	UserID uuid.UUID `json:"userId"`
}

// GetGroups returns every group the caller belongs to.
func (h *Handler) GetGroups(c *fiber.Ctx) error {
	groups, err := h.chat.UserGroups(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(groups)
}

// GetGroupMembers returns every member of a group.
func (h *Handler) GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "invalid group id")
	}

	members, err := h.chat.GroupMembers(c.Context(), groupID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(members)
}

// AddGroupMember adds a user to a group. Admin only.
func (h *Handler) AddGroupMember(c *fiber.Ctx) error {
	requesterID := middleware.UserID(c)

	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "invalid group id")
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return badRequest(c, "userId is required")
	}

	if err := h.chat.AddMember(c.Context(), groupID, req.UserID, requesterID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Member added successfully"})
}

// RemoveGroupMember removes a user from a group. Admin only.
func (h *Handler) RemoveGroupMember(c *fiber.Ctx) error {
	requesterID := middleware.UserID(c)

	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return badRequest(c, "invalid group id")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.chat.RemoveMember(c.Context(), groupID, userID, requesterID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Member removed successfully"})
}
