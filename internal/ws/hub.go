package ws

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/RajanRajbhar12/Whisperconnect/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// ErrNotConnected is returned when a push targets a connection id that is no
// longer registered.
var ErrNotConnected = errors.New("connection not found")

// Hub is the connection registry. Every live websocket is keyed by an
// ephemeral id assigned at register time; the id is the unit of identity for
// queueing, matching and signaling.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*connection
}

type connection struct {
	conn *websocket.Conn
	info ConnInfo

	// writeMu serializes writes; gorilla connections allow one writer at a time.
	writeMu sync.Mutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*connection)}
}

// Register stores the connection and returns its assigned id.
func (h *Hub) Register(conn *websocket.Conn, info ConnInfo) string {
	id := newConnID()
	info.ConnID = id

	h.mu.Lock()
	h.conns[id] = &connection{conn: conn, info: info}
	h.mu.Unlock()
	return id
}

// Unregister drops the connection from the registry. It does not close the
// underlying socket; the read loop owns that.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

// IsConnected reports whether the connection id is currently registered.
func (h *Hub) IsConnected(id string) bool {
	h.mu.RLock()
	_, ok := h.conns[id]
	h.mu.RUnlock()
	return ok
}

// Info returns the registered metadata for a connection.
func (h *Hub) Info(id string) (ConnInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if c, ok := h.conns[id]; ok {
		return c.info, true
	}
	return ConnInfo{}, false
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Send pushes an event to one connection. A write failure closes the socket
// and removes it from the registry so no later push targets a dead peer.
func (h *Hub) Send(id string, event models.ServerEvent) error {
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(event); err != nil {
		log.Printf("websocket write error conn=%s: %v", id, err)
		c.conn.Close()
		h.Unregister(id)
		return fmt.Errorf("send to %s: %w", id, err)
	}
	return nil
}

// Ping sends a ping control frame to keep the connection alive.
func (h *Hub) Ping(id string) error {
	h.mu.RLock()
	c, ok := h.conns[id]
	h.mu.RUnlock()
	if !ok {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}
