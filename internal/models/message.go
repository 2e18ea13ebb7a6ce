package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageType classifies message content.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeFile  MessageType = "file"
)

// ParseMessageType validates a type token from a client. Both the HTTP
// and the WebSocket send paths go through this, so an unrecognized token
// fails fast instead of reaching the database.
func ParseMessageType(s string) (MessageType, error) {
	if s == "" {
		return TypeText, nil
	}
	switch MessageType(s) {
	case TypeText, TypeImage, TypeFile:
		return MessageType(s), nil
	}
	return "", fmt.Errorf("unknown message type %q", s)
}

// Message represents a chat message. Exactly one of ReceiverID and
// GroupID is set; the router rejects anything else before persistence.
type Message struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Content    string      `json:"content" db:"content"`
	Timestamp  time.Time   `json:"timestamp" db:"created_at"`
	Type       MessageType `json:"type" db:"type"`
	FileURL    *string     `json:"fileUrl,omitempty" db:"file_url"`
	SenderID   uuid.UUID   `json:"senderId" db:"sender_id"`
	ReceiverID *uuid.UUID  `json:"receiverId,omitempty" db:"receiver_id"` // Null for group messages
	GroupID    *uuid.UUID  `json:"groupId,omitempty" db:"group_id"`       // Null for direct messages
}

// MessageDto includes the resolved sender name.
type MessageDto struct {
	ID         uuid.UUID   `json:"id"`
	Content    string      `json:"content"`
	Timestamp  time.Time   `json:"timestamp"`
	Type       MessageType `json:"type"`
	FileURL    *string     `json:"fileUrl,omitempty"`
	SenderID   uuid.UUID   `json:"senderId"`
	SenderName string      `json:"senderName"`
	ReceiverID *uuid.UUID  `json:"receiverId,omitempty"`
	GroupID    *uuid.UUID  `json:"groupId,omitempty"`
}
