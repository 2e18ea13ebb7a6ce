// Package ws delivers messages to live WebSocket transports. The Hub
// owns the connection registry and the per-group broadcast channels;
// both are process-local and vanish on restart.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatterbox/server/internal/models"
)

// StatusStore is the slice of the user store the hub needs to keep
// presence rows in step with connect and disconnect events.
type StatusStore interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.UserStatus) error
}

// Hub maintains the set of active clients and routes delivery events.
// Group channel membership is session-scoped and driven by explicit
// JoinGroup/LeaveGroup events; it is independent of the persisted
// membership rows that gate admin rights.
type Hub struct {
	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	registry *Registry
	statuses StatusStore

	// mu serializes send-channel closes against pushes, so a displaced
	// client's channel is never closed mid-send.
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]bool
}

// NewHub creates a hub around an explicitly owned registry.
func NewHub(registry *Registry, statuses StatusStore) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		registry:   registry,
		statuses:   statuses,
		rooms:      make(map[uuid.UUID]map[*Client]bool),
	}
}

// Registry exposes the hub's connection registry.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

// registerClient binds the client's user to its transport. A previous
// transport for the same user is displaced and its send channel closed.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if prev := h.registry.Bind(client.ID, client); prev != nil {
		close(prev.Send)
		h.dropFromRoomsLocked(prev)
	}
	h.mu.Unlock()

	if err := h.statuses.UpdateStatus(context.Background(), client.ID, models.StatusOnline); err != nil {
		log.Printf("Failed to update online status: %v", err)
	}

	log.Printf("Client connected: %s (%s)", client.UserName, client.ID)
}

// unregisterClient removes the binding unless the client was already
// displaced by a newer transport for the same user.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	h.dropFromRoomsLocked(client)
	bound := h.registry.Unbind(client.ID, client)
	if bound {
		close(client.Send)
	}
	h.mu.Unlock()

	if !bound {
		return
	}

	if err := h.statuses.UpdateStatus(context.Background(), client.ID, models.StatusOffline); err != nil {
		log.Printf("Failed to update offline status: %v", err)
	}

	log.Printf("Client disconnected: %s (%s)", client.UserName, client.ID)
}

// JoinGroup subscribes the client's transport to a group's broadcast
// channel for the rest of the session.
func (h *Hub) JoinGroup(groupID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[groupID] == nil {
		h.rooms[groupID] = make(map[*Client]bool)
	}
	h.rooms[groupID][client] = true
}

// LeaveGroup drops the client's transport from the broadcast channel.
func (h *Hub) LeaveGroup(groupID uuid.UUID, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(groupID, client)
}

func (h *Hub) leaveLocked(groupID uuid.UUID, client *Client) {
	if room := h.rooms[groupID]; room != nil {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, groupID)
		}
	}
}

func (h *Hub) dropFromRoomsLocked(client *Client) {
	for groupID := range h.rooms {
		h.leaveLocked(groupID, client)
	}
}

// PushToUser delivers a message event to the receiver's transport.
// An unbound receiver is simply offline, not an error.
func (h *Hub) PushToUser(receiverID uuid.UUID, msg models.MessageDto) {
	h.pushToBound(receiverID, EventReceiveMessage, msg)
}

// PushReceipt echoes a delivery receipt to the sender's own transport.
func (h *Hub) PushReceipt(senderID uuid.UUID, msg models.MessageDto) {
	h.pushToBound(senderID, EventMessageSent, msg)
}

// PushToGroup broadcasts a message event to every transport currently
// subscribed to the group's channel. Delivery order across recipients
// is unspecified.
func (h *Hub) PushToGroup(groupID uuid.UUID, msg models.MessageDto) {
	h.broadcast(groupID, EventReceiveGroupMessage, msg)
}

// RelayTyping forwards a typing indicator to one user.
func (h *Hub) RelayTyping(receiverID, typistID uuid.UUID, isTyping bool) {
	h.pushToBound(receiverID, EventUserTyping, TypingEvent{UserID: typistID, IsTyping: isTyping})
}

// RelayGroupTyping forwards a typing indicator to a group channel.
func (h *Hub) RelayGroupTyping(groupID, typistID uuid.UUID, isTyping bool) {
	h.broadcast(groupID, EventGroupUserTyping, GroupTypingEvent{
		UserID:   typistID,
		GroupID:  groupID,
		IsTyping: isTyping,
	})
}

// SendError reports a routing failure back to the offending client.
// The binding check keeps it from writing to a channel that was closed
// when a newer transport displaced this one.
func (h *Hub) SendError(c *Client, message string) {
	data, err := marshalEvent(EventError, ErrorPayload{Message: message})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if bound, ok := h.registry.Lookup(c.ID); ok && bound == c {
		h.send(c, data)
	}
}

func (h *Hub) pushToBound(userID uuid.UUID, event EventType, payload interface{}) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.registry.Lookup(userID); ok {
		h.send(client, data)
	}
}

func (h *Hub) broadcast(groupID uuid.UUID, event EventType, payload interface{}) {
	data, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[groupID] {
		h.send(client, data)
	}
}

func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		log.Printf("Dropped event for slow client: %s", client.ID)
	}
}

func marshalEvent(event EventType, payload interface{}) ([]byte, error) {
	return json.Marshal(Envelope{
		Event:     event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}
