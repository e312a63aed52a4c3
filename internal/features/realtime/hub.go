// Package realtime fans giveaway events out to connected dashboard clients
// over websockets and routes a small set of inbound client events back into
// the application.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"twitch-giveaway-backend/internal/common/logger"
)

// Envelope is the wire format for both directions: a named event plus an
// arbitrary JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// InboundHandler receives events sent by a connected client.
type InboundHandler func(event string, data json.RawMessage)

// Hub tracks connected clients and broadcasts events to all of them. A client
// whose send buffer is full is dropped rather than allowed to stall the rest.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	inbound InboundHandler
	log     zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     logger.Component("realtime_hub"),
	}
}

// SetInboundHandler installs the callback for client-sent events. Must be
// called before the first client connects.
func (h *Hub) SetInboundHandler(handler InboundHandler) {
	h.inbound = handler
}

// Broadcast sends an event to every connected client. Marshalling happens
// once, not per client.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("broadcast payload not serializable")
		return
	}
	message, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("event", event).Msg("broadcast envelope not serializable")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow consumer. Close the send channel from here is unsafe while
			// holding RLock; signal the client to shut itself down instead.
			client.drop()
		}
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info().Int("clients", count).Msg("client connected")
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
	}
	count := len(h.clients)
	h.mu.Unlock()
	h.log.Info().Int("clients", count).Msg("client disconnected")
}

func (h *Hub) dispatch(event string, data json.RawMessage) {
	if h.inbound == nil {
		return
	}
	h.inbound(event, data)
}
