package feed

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

const (
	broadcastBuffer = 64
	clientBuffer    = 16
)

// Hub fans finalized webhook logs out to WebSocket subscribers.
// Clients that cannot keep up are disconnected.
type Hub struct {
	l          log.Logger
	clients    map[*client]bool
	broadcast  chan broadcastMessage
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
}

func NewHub(l log.Logger) *Hub {
	return &Hub{
		l:          l,
		clients:    make(map[*client]bool),
		broadcast:  make(chan broadcastMessage, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			for c := range h.clients {
				if !c.subscribedTo(msg.workspaceID) {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					h.l.Warnf(ctx, "feed client %s too slow, dropping", c.remote)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.count.Store(int64(len(h.clients)))
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	return int(h.count.Load())
}

// Broadcast queues wl for delivery to subscribers. It never blocks.
func (h *Hub) Broadcast(wl model.WebhookLog) {
	data, err := json.Marshal(newMessage(wl))
	if err != nil {
		h.l.Errorf(context.Background(), "feed.Broadcast marshal: %v", err)
		return
	}

	select {
	case h.broadcast <- broadcastMessage{workspaceID: wl.WorkspaceID, data: data}:
	default:
		h.l.Warnf(context.Background(), "feed broadcast dropped log=%s", wl.ID)
	}
}

// attach registers c unless the hub has stopped.
func (h *Hub) attach(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) detach(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
