// Package spectate streams snapshots to read-only websocket clients
package spectate

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/parameter"
)

// Message types on the wire
const (
	MessageHello    = "hello"
	MessageSnapshot = "snapshot"
)

// Message is the JSON envelope sent to spectators
type Message struct {
	Type     string           `json:"type"`
	Client   string           `json:"client,omitempty"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
}

type client struct {
	id   string
	send chan []byte
}

// Hub fans snapshots out to connected spectators
// A client whose backlog fills is dropped rather than slowing the game
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	latest  []byte
	closed  bool
	buffer  int
	logger  *log.Logger

	sent    atomic.Uint64
	dropped atomic.Uint64
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	return newHub(logger, parameter.SpectatorSendBuffer)
}

func newHub(logger *log.Logger, buffer int) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		clients: make(map[string]*client),
		buffer:  buffer,
		logger:  logger,
	}
}

// Publish implements engine.SnapshotSink
func (h *Hub) Publish(s engine.Snapshot) {
	data, err := json.Marshal(Message{Type: MessageSnapshot, Snapshot: &s})
	if err != nil {
		h.logger.Printf("spectate: marshal snapshot %d: %v", s.Tick, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = data
	for id, c := range h.clients {
		select {
		case c.send <- data:
			h.sent.Add(1)
		default:
			h.dropped.Add(1)
			h.logger.Printf("spectate: client %s too slow, disconnecting", id)
			h.removeLocked(id)
		}
	}
}

// Clients returns the number of connected spectators
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stats returns messages queued and clients dropped for backlog
func (h *Hub) Stats() (sent, dropped uint64) {
	return h.sent.Load(), h.dropped.Load()
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id := range h.clients {
		h.removeLocked(id)
	}
}

// register queues the hello and the latest frame for a new client
func (h *Hub) register() (*client, bool) {
	c := &client{id: uuid.NewString(), send: make(chan []byte, h.buffer+2)}
	hello, _ := json.Marshal(Message{Type: MessageHello, Client: c.id})

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	c.send <- hello
	if h.latest != nil {
		c.send <- h.latest
	}
	h.clients[c.id] = c
	h.logger.Printf("spectate: client %s connected (%d total)", c.id, len(h.clients))
	return c, true
}

func (h *Hub) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		h.removeLocked(id)
		h.logger.Printf("spectate: client %s disconnected (%d total)", id, len(h.clients))
	}
}

// removeLocked closes the client's queue, ending its writer
func (h *Hub) removeLocked(id string) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	close(c.send)
}
