package feed

import (
	"log"
	"sync"

	"altoev/internal/domain"

	"github.com/gorilla/websocket"
)

// Event is one reservation change pushed to dashboard clients.
type Event struct {
	Type        string              `json:"type"`
	Reservation *domain.Reservation `json:"reservation"`
}

// Hub fans reservation events out to every connected dashboard client.
// Connections are anonymous; a client that fails a write is dropped.
// Gorilla connections allow one concurrent writer, so each connection
// carries its own write lock and the mail-poll goroutine and HTTP handlers
// can publish at the same time.
type Hub struct {
	connections map[*websocket.Conn]*sync.Mutex
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*websocket.Conn]*sync.Mutex),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.connections[conn] = &sync.Mutex{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.connections[conn]; exists {
		_ = conn.Close()
		delete(h.connections, conn)
	}
}

// Publish implements the FeedPublisher interface the ingest and REST
// layers depend on.
func (h *Hub) Publish(event string, r *domain.Reservation) {
	type target struct {
		conn *websocket.Conn
		mu   *sync.Mutex
	}

	h.mutex.RLock()
	targets := make([]target, 0, len(h.connections))
	for conn, mu := range h.connections {
		targets = append(targets, target{conn: conn, mu: mu})
	}
	h.mutex.RUnlock()

	msg := Event{Type: event, Reservation: r}
	for _, t := range targets {
		t.mu.Lock()
		err := t.conn.WriteJSON(msg)
		t.mu.Unlock()
		if err != nil {
			log.Printf("feed: dropping client: %v", err)
			h.Unregister(t.conn)
		}
	}
}

// ClientCount reports how many dashboard clients are connected.
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.connections)
}
