package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"skucraft/pkg/models"
)

// ProgressHub fans sync run progress out to websocket subscribers. The UI
// opens one connection and receives a snapshot on every run state change.
type ProgressHub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
}

// NewProgressHub creates a new progress hub
func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// The embedded UI is served from the platform's domain.
				return true
			},
		},
		conns: make(map[*websocket.Conn]bool),
	}
}

// Publish sends a progress snapshot to every subscriber. Connections that
// fail to write are dropped.
func (h *ProgressHub) Publish(progress models.SyncRunProgress) {
	payload, err := json.Marshal(progress)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode progress snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Handle upgrades the connection and keeps it subscribed until the client
// goes away.
func (h *ProgressHub) Handle(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	log.Debug().Msg("Progress subscriber connected")

	// Drain until the peer closes; the feed is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
	return nil
}
