package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"chatterbox/server/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Router accepts a send request on behalf of a connected client. It is
// implemented by the chat service.
type Router interface {
	Send(ctx context.Context, senderID uuid.UUID, receiverID, groupID *uuid.UUID, content, msgType string, fileURL *string) (models.MessageDto, error)
}

// Client represents one authenticated WebSocket connection.
type Client struct {
	ID       uuid.UUID // User ID
	UserName string
	Conn     *websocket.Conn
	Hub      *Hub
	Router   Router
	Send     chan []byte
}

// NewClient creates a client for an already-authenticated connection.
func NewClient(userID uuid.UUID, userName string, conn *websocket.Conn, hub *Hub, router Router) *Client {
	return &Client{
		ID:       userID,
		UserName: userName,
		Conn:     conn,
		Hub:      hub,
		Router:   router,
		Send:     make(chan []byte, 256),
	}
}

// incoming is the frame clients send to the server.
type incoming struct {
	Event   EventType       `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ReadPump handles incoming events from the client.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var in incoming
		if err := json.Unmarshal(message, &in); err != nil {
			c.sendError("malformed event")
			continue
		}

		c.handleEvent(in)
	}
}

// WritePump handles outgoing messages to the client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Write error: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent dispatches one client event. Routing failures go back to
// the sender as an Error event; they never abort the connection.
func (c *Client) handleEvent(in incoming) {
	switch in.Event {
	case EventSendMessageToUser:
		var p SendToUserPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed SendMessageToUser payload")
			return
		}
		_, err := c.Router.Send(context.Background(), c.ID, &p.ReceiverID, nil, p.Content, p.Type, p.FileURL)
		if err != nil {
			c.sendError(err.Error())
		}

	case EventSendMessageToGroup:
		var p SendToGroupPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed SendMessageToGroup payload")
			return
		}
		_, err := c.Router.Send(context.Background(), c.ID, nil, &p.GroupID, p.Content, p.Type, p.FileURL)
		if err != nil {
			c.sendError(err.Error())
		}

	case EventJoinGroup:
		var p GroupPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed JoinGroup payload")
			return
		}
		c.Hub.JoinGroup(p.GroupID, c)

	case EventLeaveGroup:
		var p GroupPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed LeaveGroup payload")
			return
		}
		c.Hub.LeaveGroup(p.GroupID, c)

	case EventTyping:
		var p TypingPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed Typing payload")
			return
		}
		c.Hub.RelayTyping(p.ReceiverID, c.ID, p.IsTyping)

	case EventTypingInGroup:
		var p GroupTypingPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError("malformed TypingInGroup payload")
			return
		}
		c.Hub.RelayGroupTyping(p.GroupID, c.ID, p.IsTyping)

	default:
		log.Printf("Unknown event from %s: %s", c.ID, in.Event)
	}
}

func (c *Client) sendError(message string) {
	c.Hub.SendError(c, message)
}
