// Package ws pushes newly created alerts to dashboard clients over
// websocket connections.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"alerts-backend/internal/logging"
	"alerts-backend/internal/models"
)

const maxConnections = 100

// Hub tracks open websocket connections and broadcasts alert events to
// all of them.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Add registers a connection. Rejected above the connection cap.
func (h *Hub) Add(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxConnections {
		h.logger.Warnf("Max websocket connections reached, rejecting client")
		return false
	}
	h.conns[conn] = true
	h.logger.Infof("Websocket client connected (total: %d)", len(h.conns))
	return true
}

// Remove drops a connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	h.logger.Infof("Websocket client disconnected (remaining: %d)", len(h.conns))
}

// BroadcastAlert sends a created alert to every connected client.
// Connections that fail to write are dropped.
func (h *Hub) BroadcastAlert(alert models.Alert) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(map[string]interface{}{
			"event": "alert_created",
			"alert": alert,
		}); err != nil {
			h.logger.Errorf("Failed to push alert to websocket client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
