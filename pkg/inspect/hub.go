package inspect

import (
	"sync"
	"time"

	"github.com/strand-ui/strand/pkg/reactive"
)

// WriteEvent describes one signal write as seen by the live feed.
type WriteEvent struct {
	Signal      string    `json:"signal"`
	Subscribers int       `json:"subscribers"`
	At          time.Time `json:"at"`
}

// clientBuffer is the per-client event queue depth. A client that falls
// this far behind starts losing events rather than blocking writers.
const clientBuffer = 64

// Hub fans signal write events out to connected live-feed clients.
// Install its Hooks on the store whose writes should be visible.
type Hub struct {
	mu      sync.Mutex
	clients map[chan WriteEvent]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[chan WriteEvent]struct{}),
	}
}

// Hooks returns the store hooks that feed this hub.
func (h *Hub) Hooks() reactive.Hooks {
	return reactive.Hooks{
		OnWrite: func(id reactive.SignalID, subscribers int) {
			h.broadcast(WriteEvent{
				Signal:      id.String(),
				Subscribers: subscribers,
				At:          time.Now(),
			})
		},
	}
}

// register adds a client and returns its event channel.
func (h *Hub) register() chan WriteEvent {
	ch := make(chan WriteEvent, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// unregister removes a client.
func (h *Hub) unregister(ch chan WriteEvent) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// broadcast delivers an event to every client, dropping it for clients
// whose buffers are full. Writers are never blocked by slow readers.
func (h *Hub) broadcast(ev WriteEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// ClientCount returns the number of connected live-feed clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
