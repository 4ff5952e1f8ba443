package notify

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const sendBuffer = 32

// Conn is one registered live connection. Writes go through a buffered
// channel so a slow client never blocks the lifecycle engine; when the
// buffer is full the message is dropped.
type Conn struct {
	UserID uint
	Group  string

	ws *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *Conn) writePump() {
	for msg := range c.send {
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[hub] write to user %d failed: %v", c.UserID, err)
			return
		}
	}
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.ws.Close()
}

// Send marshals the envelope and queues it on this connection only.
// Dispatcher workers may still hold a snapshot taken before the client
// disconnected, so a send after close is a no-op, never a panic.
func (c *Conn) Send(data map[string]any) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("[hub] marshal envelope: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

// Hub is the in-memory connection registry, keyed by (user, group).
// It replaces persisted connection rows: a connection that is gone is
// simply not delivered to.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*Conn]struct{})}
}

var _ Sink = (*Hub)(nil)

func (h *Hub) Register(user uint, group string, ws *websocket.Conn) *Conn {
	c := &Conn{UserID: user, Group: group, ws: ws, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.conns[group] == nil {
		h.conns[group] = make(map[*Conn]struct{})
	}
	h.conns[group][c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	return c
}

func (h *Hub) Unregister(c *Conn) {
	h.mu.Lock()
	if set, ok := h.conns[c.Group]; ok {
		delete(set, c)
	}
	h.mu.Unlock()

	c.close()
}

// Publish delivers to every connection of the given user in the group.
func (h *Hub) Publish(user uint, group string, data map[string]any) {
	for _, c := range h.snapshot(group) {
		if c.UserID == user {
			c.Send(data)
		}
	}
}

// Broadcast delivers to every connection in the group.
func (h *Hub) Broadcast(group string, data map[string]any) {
	for _, c := range h.snapshot(group) {
		c.Send(data)
	}
}

func (h *Hub) snapshot(group string) []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Conn, 0, len(h.conns[group]))
	for c := range h.conns[group] {
		out = append(out, c)
	}
	return out
}
