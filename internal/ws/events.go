package ws

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a WebSocket event.
type EventType string

const (
	// Client → server
	EventSendMessageToUser  EventType = "SendMessageToUser"
	EventSendMessageToGroup EventType = "SendMessageToGroup"
	EventJoinGroup          EventType = "JoinGroup"
	EventLeaveGroup         EventType = "LeaveGroup"
	EventTyping             EventType = "Typing"
	EventTypingInGroup      EventType = "TypingInGroup"

	// Server → client
	EventReceiveMessage      EventType = "ReceiveMessage"
	EventMessageSent         EventType = "MessageSent"
	EventReceiveGroupMessage EventType = "ReceiveGroupMessage"
	EventUserTyping          EventType = "UserTyping"
	EventGroupUserTyping     EventType = "GroupUserTyping"
	EventError               EventType = "Error"
)

// Envelope is the frame every server-to-client event is wrapped in.
type Envelope struct {
	Event     EventType   `json:"event"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// SendToUserPayload is the body of a SendMessageToUser event.
type SendToUserPayload struct {
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	FileURL    *string   `json:"fileUrl,omitempty"`
}

// SendToGroupPayload is the body of a SendMessageToGroup event.
type SendToGroupPayload struct {
	GroupID uuid.UUID `json:"groupId"`
	Content string    `json:"content"`
	Type    string    `json:"type"`
	FileURL *string   `json:"fileUrl,omitempty"`
}

// GroupPayload is the body of JoinGroup and LeaveGroup events.
type GroupPayload struct {
	GroupID uuid.UUID `json:"groupId"`
}

// TypingPayload is the body of a Typing event.
type TypingPayload struct {
	ReceiverID uuid.UUID `json:"receiverId"`
	IsTyping   bool      `json:"isTyping"`
}

// GroupTypingPayload is the body of a TypingInGroup event.
type GroupTypingPayload struct {
	GroupID  uuid.UUID `json:"groupId"`
	IsTyping bool      `json:"isTyping"`
}

// TypingEvent is relayed to the peer of a typing user.
type TypingEvent struct {
	UserID   uuid.UUID `json:"userId"`
	IsTyping bool      `json:"isTyping"`
}

// GroupTypingEvent is relayed to a group channel.
type GroupTypingEvent struct {
	UserID   uuid.UUID `json:"userId"`
	GroupID  uuid.UUID `json:"groupId"`
	IsTyping bool      `json:"isTyping"`
}

// ErrorPayload carries a routing failure back to the offending client.
type ErrorPayload struct {
	Message string `json:"message"`
}
