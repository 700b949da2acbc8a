package net

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"InkBoard/internal/state"
)

// Message is one board event pushed to watchers.
type Message struct {
	Type  string        `json:"type"` // "path", "clear", "down", "move", "up"
	Path  *state.Record `json:"path,omitempty"`
	Point *state.Point  `json:"point,omitempty"`
}

// Hub broadcasts board events to websocket watchers so another machine
// can mirror the drawing live. It is the outward half of the host
// integration; nothing ever flows back into the engine.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// Watchers connect from other hosts on the local network.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades a watcher connection and keeps it registered until
// it goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Hub] Upgrade failed: %v", err)
		return
	}
	h.add(conn)
	go h.drain(conn)
}

// Listen serves the watcher endpoint on the given port. Blocks, so run
// it on its own goroutine.
func (h *Hub) Listen(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/watch", h)
	log.Printf("[Hub] Watcher endpoint listening on port %d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

// BroadcastPath pushes a committed path to all watchers.
func (h *Hub) BroadcastPath(p state.Path) {
	rec := state.Serialize(p)
	h.broadcast(Message{Type: "path", Path: &rec})
}

// BroadcastClear tells watchers the board was cleared.
func (h *Hub) BroadcastClear() {
	h.broadcast(Message{Type: "clear"})
}

// BroadcastPointer relays a tool gesture event ("down", "move", "up").
func (h *Hub) BroadcastPointer(kind string, p *state.Point) {
	h.broadcast(Message{Type: kind, Point: p})
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	log.Printf("[Hub] Watcher connected from %s", conn.RemoteAddr())
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
	log.Printf("[Hub] Watcher disconnected: %s", conn.RemoteAddr())
}

// drain discards inbound frames; the protocol is one-way. It doubles as
// the disconnect detector.
func (h *Hub) drain(conn *websocket.Conn) {
	defer h.remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Hub] Could not marshal message: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[Hub] Error sending to %s: %v", conn.RemoteAddr(), err)
		}
	}
}
