package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages the live operator feed: every connected socket receives every
// game transition event. There is one logical game session, so there is no
// per-room routing.
type Hub struct {
	conns map[*Connection]bool
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *Message

	log zerolog.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	Send chan []byte
}

// NewHub creates a new WebSocket hub
func NewHub(log zerolog.Logger) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = true
			h.mu.Unlock()
			h.log.Debug().Int("connections", h.Count()).Msg("feed client connected")

		case conn := <-h.unregister:
			h.mu.Lock()
			if h.conns[conn] {
				delete(h.conns, conn)
				close(conn.Send)
			}
			h.mu.Unlock()
			h.log.Debug().Int("connections", h.Count()).Msg("feed client disconnected")

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg)
			h.mu.RLock()
			for conn := range h.conns {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Notify broadcasts a game transition to all connected clients (implements
// service.Notifier).
func (h *Hub) Notify(event string, payload map[string]interface{}) {
	data, _ := json.Marshal(payload)
	select {
	case h.broadcast <- &Message{Type: event, Payload: data}:
	default:
		// Feed is best effort; never block the game service.
	}
}
