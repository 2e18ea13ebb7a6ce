package ws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"chatterbox/server/internal/models"
)

type fakeRouter struct {
	senderID   uuid.UUID
	receiverID *uuid.UUID
	groupID    *uuid.UUID
	content    string
	msgType    string
	calls      int
	err        error
}

func (f *fakeRouter) Send(_ context.Context, senderID uuid.UUID, receiverID, groupID *uuid.UUID, content, msgType string, _ *string) (models.MessageDto, error) {
	f.calls++
	f.senderID = senderID
	f.receiverID = receiverID
	f.groupID = groupID
	f.content = content
	f.msgType = msgType
	if f.err != nil {
		return models.MessageDto{}, f.err
	}
	return models.MessageDto{ID: uuid.New()}, nil
}

func event(t *testing.T, name EventType, payload interface{}) incoming {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return incoming{Event: name, Payload: raw}
}

func boundClient(hub *Hub, router Router) *Client {
	c := &Client{ID: uuid.New(), UserName: "alice", Hub: hub, Router: router, Send: make(chan []byte, 8)}
	hub.Registry().Bind(c.ID, c)
	return c
}

func TestHandleSendMessageToUser(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	router := &fakeRouter{}
	c := boundClient(hub, router)

	receiverID := uuid.New()
	c.handleEvent(event(t, EventSendMessageToUser, SendToUserPayload{
		ReceiverID: receiverID,
		Content:    "hi",
		Type:       "text",
	}))

	if router.calls != 1 {
		t.Fatalf("router called %d times, want 1", router.calls)
	}
	if router.senderID != c.ID {
		t.Error("sender id was not taken from the authenticated client")
	}
	if router.receiverID == nil || *router.receiverID != receiverID {
		t.Error("receiver id was not forwarded")
	}
	if router.groupID != nil {
		t.Error("a direct send must not carry a group id")
	}
}

func TestHandleSendMessageToGroup(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	router := &fakeRouter{}
	c := boundClient(hub, router)

	groupID := uuid.New()
	c.handleEvent(event(t, EventSendMessageToGroup, SendToGroupPayload{
		GroupID: groupID,
		Content: "hello team",
		Type:    "text",
	}))

	if router.groupID == nil || *router.groupID != groupID {
		t.Error("group id was not forwarded")
	}
	if router.receiverID != nil {
		t.Error("a group send must not carry a receiver id")
	}
}

func TestRoutingFailureComesBackAsErrorEvent(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	router := &fakeRouter{err: errors.New("invalid message type")}
	c := boundClient(hub, router)

	c.handleEvent(event(t, EventSendMessageToUser, SendToUserPayload{
		ReceiverID: uuid.New(),
		Content:    "hi",
		Type:       "video",
	}))

	env := recvEvent(t, c)
	if env.Event != EventError {
		t.Fatalf("event = %q, want %q", env.Event, EventError)
	}
}

func TestHandleJoinAndLeaveGroup(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	c := boundClient(hub, &fakeRouter{})

	groupID := uuid.New()
	c.handleEvent(event(t, EventJoinGroup, GroupPayload{GroupID: groupID}))

	hub.PushToGroup(groupID, models.MessageDto{Content: "in"})
	if env := recvEvent(t, c); env.Event != EventReceiveGroupMessage {
		t.Fatalf("event = %q, want %q", env.Event, EventReceiveGroupMessage)
	}

	c.handleEvent(event(t, EventLeaveGroup, GroupPayload{GroupID: groupID}))
	hub.PushToGroup(groupID, models.MessageDto{Content: "out"})
	assertNoEvent(t, c)
}

func TestHandleTypingRelaysToPeer(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	c := boundClient(hub, &fakeRouter{})
	peer := boundClient(hub, &fakeRouter{})

	c.handleEvent(event(t, EventTyping, TypingPayload{ReceiverID: peer.ID, IsTyping: true}))

	env := recvEvent(t, peer)
	if env.Event != EventUserTyping {
		t.Fatalf("event = %q, want %q", env.Event, EventUserTyping)
	}
}

func TestMalformedPayloadReportsError(t *testing.T) {
	hub := NewHub(NewRegistry(), newStatusRecorder())
	c := boundClient(hub, &fakeRouter{})

	c.handleEvent(incoming{Event: EventSendMessageToUser, Payload: json.RawMessage(`{"receiverId":42}`)})

	env := recvEvent(t, c)
	if env.Event != EventError {
		t.Fatalf("event = %q, want %q", env.Event, EventError)
	}
}
