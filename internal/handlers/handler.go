// Package handlers exposes the HTTP and WebSocket surface over the
// chat service.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/chat"
	"chatterbox/server/internal/ws"
)

// Handler holds the dependencies every route needs.
type Handler struct {
	chat *chat.Service
	hub  *ws.Hub
}

func New(chatSvc *chat.Service, hub *ws.Hub) *Handler {
	return &Handler{chat: chatSvc, hub: hub}
}

// fail maps a service error to its HTTP status, carrying the message
// string in the body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, chat.ErrInvalidTarget),
		errors.Is(err, chat.ErrInvalidMessageType),
		errors.Is(err, chat.ErrAlreadyMember),
		errors.Is(err, chat.ErrNotAMember):
		status = fiber.StatusBadRequest
	case errors.Is(err, chat.ErrInvalidCredentials),
		errors.Is(err, chat.ErrUnauthenticated):
		status = fiber.StatusUnauthorized
	case errors.Is(err, chat.ErrNotAuthorized):
		status = fiber.StatusForbidden
	case errors.Is(err, chat.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, chat.ErrUserExists):
		status = fiber.StatusConflict
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return c.Status(status).JSON(fiber.Map{"message": message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}
