// Package sse fans live-update events out to connected browsers.
package sse

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/metrics"
)

const clientBuffer = 64

// Event represents a Server-Sent Event.
type Event struct {
	Name string
	Data []byte
}

// Client represents a connected SSE client.
type Client struct {
	ID       string
	Username string
	Events   chan Event
}

// Hub manages all SSE client connections.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHub creates an empty hub. m may be nil.
func NewHub(m *metrics.Metrics, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients: make(map[string]*Client),
		metrics: m,
		logger:  logger,
	}
}

// Register adds a new client with a buffered event channel.
func (h *Hub) Register(id, username string) *Client {
	client := &Client{ID: id, Username: username, Events: make(chan Event, clientBuffer)}

	h.mu.Lock()
	h.clients[id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.metrics.SetLiveClients(total)
	h.logger.Debug("client registered", zap.String("client_id", id), zap.String("user", username), zap.Int("total", total))
	return client
}

// Unregister removes a client from the hub and closes its channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	client, ok := h.clients[id]
	if ok {
		close(client.Events)
		delete(h.clients, id)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.metrics.SetLiveClients(total)
		h.logger.Debug("client unregistered", zap.String("client_id", id), zap.Int("total", total))
	}
}

// Publish sends an event to every connected client without blocking. A client
// whose buffer is full misses the event.
func (h *Hub) Publish(name string, data []byte) {
	event := Event{Name: name, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			h.metrics.EventDropped()
			h.logger.Warn("client buffer full, skipping event", zap.String("client_id", client.ID), zap.String("event", name))
		}
	}
	h.metrics.EventBroadcast(name)
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
