package ws

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func newTestClient(id uuid.UUID) *Client {
	return &Client{ID: id, Send: make(chan []byte, 8)}
}

func TestRegistryBindLookupUnbind(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	client := newTestClient(userID)

	if _, ok := r.Lookup(userID); ok {
		t.Fatal("Lookup found a binding before Bind")
	}

	if prev := r.Bind(userID, client); prev != nil {
		t.Fatalf("Bind displaced %v on an empty registry", prev)
	}

	got, ok := r.Lookup(userID)
	if !ok || got != client {
		t.Fatal("Lookup did not return the bound client")
	}

	if !r.Unbind(userID, client) {
		t.Fatal("Unbind reported false for the bound client")
	}
	if _, ok := r.Lookup(userID); ok {
		t.Fatal("Lookup found a binding after Unbind")
	}
}

func TestRegistryRebindReplacesBinding(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	first := newTestClient(userID)
	second := newTestClient(userID)

	r.Bind(userID, first)
	prev := r.Bind(userID, second)

	if prev != first {
		t.Fatal("Bind did not return the displaced client")
	}

	got, ok := r.Lookup(userID)
	if !ok || got != second {
		t.Fatal("Lookup returned the displaced client after rebind")
	}
}

func TestRegistryStaleUnbindKeepsSuccessor(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()
	first := newTestClient(userID)
	second := newTestClient(userID)

	r.Bind(userID, first)
	r.Bind(userID, second)

	// The displaced connection's teardown must not evict its successor.
	if r.Unbind(userID, first) {
		t.Fatal("Unbind removed the binding on behalf of a stale client")
	}

	got, ok := r.Lookup(userID)
	if !ok || got != second {
		t.Fatal("stale Unbind evicted the successor binding")
	}
}

func TestRegistryUnbindMissingIsNoop(t *testing.T) {
	r := NewRegistry()
	if r.Unbind(uuid.New(), newTestClient(uuid.New())) {
		t.Fatal("Unbind reported true for an absent binding")
	}
}

func TestRegistryConcurrentBinds(t *testing.T) {
	r := NewRegistry()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Bind(userID, newTestClient(userID))
		}()
	}
	wg.Wait()

	if _, ok := r.Lookup(userID); !ok {
		t.Fatal("no binding survived concurrent binds")
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
}
