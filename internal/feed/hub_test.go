package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/avolkov/scribe/internal/common/dto"
	"github.com/avolkov/scribe/internal/common/logger"
)

func setupHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	log, _ := logger.New("", "test", "info")
	hub := NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	return hub, cancel
}

func newTestClient(hub *Hub) *Client {
	return NewClient(context.Background(), hub, nil, "user-123", "testuser", hub.log)
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case payload := <-c.send:
		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("failed to unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed event")
		return Event{}
	}
}

func TestHub_BroadcastsCreatedPost(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := newTestClient(hub)
	hub.Register(client)

	hub.PublishPost(dto.Post{ID: "post-1", Title: "hello", AuthorID: "user-123"})

	event := receiveEvent(t, client)
	if event.Type != EventPostCreated {
		t.Errorf("expected event type %s, got %s", EventPostCreated, event.Type)
	}
	if event.Post.ID != "post-1" {
		t.Errorf("expected post-1, got %s", event.Post.ID)
	}
}

func TestHub_FansOutToAllClients(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	first := newTestClient(hub)
	second := newTestClient(hub)
	hub.Register(first)
	hub.Register(second)

	hub.PublishPost(dto.Post{ID: "post-1"})

	if event := receiveEvent(t, first); event.Post.ID != "post-1" {
		t.Errorf("expected post-1 for first client, got %s", event.Post.ID)
	}
	if event := receiveEvent(t, second); event.Post.ID != "post-1" {
		t.Errorf("expected post-1 for second client, got %s", event.Post.ID)
	}
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub, cancel := setupHub(t)
	defer cancel()

	client := newTestClient(hub)
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed without events")
		}
	case <-time.After(time.Second):
		t.Error("expected send channel to be closed")
	}

	hub.PublishPost(dto.Post{ID: "post-1"})
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, cancel := setupHub(t)

	client := newTestClient(hub)
	hub.Register(client)

	cancel()

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected send channel to be closed on shutdown")
		}
	case <-time.After(time.Second):
		t.Error("expected send channel to be closed on shutdown")
	}
}
