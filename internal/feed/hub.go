package feed

import (
	"context"
	"encoding/json"

	"github.com/avolkov/scribe/internal/common/dto"
	"github.com/avolkov/scribe/internal/common/logger"
	"github.com/avolkov/scribe/internal/observability/metrics"
)

// Event is the wire format pushed to feed subscribers.
type Event struct {
	Type string   `json:"type"`
	Post dto.Post `json:"post"`
}

const EventPostCreated = "post.created"

// Hub fans newly created posts out to every connected websocket client.
// All client bookkeeping happens on the Run goroutine; the rest of the
// process only talks to it through channels.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		log:        log,
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishPost never blocks the create path; if the broadcast buffer is
// full the event is dropped and the feed simply misses one post.
func (h *Hub) PublishPost(post dto.Post) {
	payload, err := json.Marshal(Event{Type: EventPostCreated, Post: post})
	if err != nil {
		h.log.Errorf("feed failed to marshal post event: %v", err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.log.Warnf("feed broadcast buffer full, dropping post event post_id=%s", post.ID)
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.clients[client] = true
			metrics.FeedClientsConnected.Inc()
			h.log.WithFields(client.ctx, logger.Fields{
				"user_id":  client.userID,
				"username": client.username,
				"action":   "feed_client_connected",
			}).Info("feed client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.FeedClientsConnected.Dec()
				h.log.WithFields(client.ctx, logger.Fields{
					"user_id":  client.userID,
					"username": client.username,
					"action":   "feed_client_disconnected",
				}).Info("feed client disconnected")
			}

		case payload := <-h.broadcast:
			metrics.FeedPostsBroadcastTotal.Inc()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// slow consumer, drop it rather than stall the hub
					delete(h.clients, client)
					close(client.send)
					metrics.FeedClientsConnected.Dec()
					h.log.Warnf("feed client too slow, dropping user_id=%s", client.userID)
				}
			}
		}
	}
}

func (h *Hub) shutdown() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
		metrics.FeedClientsConnected.Dec()
	}
	h.log.Info("feed hub stopped")
}
