package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// ProgressMessage is one WebSocket frame sent to progress subscribers
type ProgressMessage struct {
	Type     string  `json:"type"` // progress, status, finished, error
	Fraction float64 `json:"fraction,omitempty"`
	Line     string  `json:"line,omitempty"`
	Filename string  `json:"filename,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// ProgressHub broadcasts download progress to WebSocket subscribers.
// It implements domain.ProgressSink so it can sit next to a collecting
// sink on any download.
type ProgressHub struct {
	logger  *zap.Logger
	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

// NewProgressHub creates a hub with no subscribers
func NewProgressHub(logger *zap.Logger) *ProgressHub {
	return &ProgressHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket handles WebSocket connections for progress streaming
func (h *ProgressHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	h.logger.Info("Progress subscriber connected",
		zap.String("remote_addr", c.Request.RemoteAddr))

	// Read loop detects disconnects; pings keep the connection alive
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.mu.Lock()
			err := conn.WriteMessage(websocket.PingMessage, nil)
			h.mu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Broadcast sends a message to every subscriber. Writes are serialized
// under the hub lock; gorilla connections do not allow concurrent writers.
func (h *ProgressHub) Broadcast(message ProgressMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(message); err != nil {
			h.logger.Warn("Failed to send progress message", zap.Error(err))
			// Connection will be cleaned up by its handler goroutine
		}
	}
}

// Progress implements domain.ProgressSink
func (h *ProgressHub) Progress(fraction float64) {
	h.Broadcast(ProgressMessage{Type: "progress", Fraction: fraction})
}

// Status implements domain.ProgressSink
func (h *ProgressHub) Status(line string) {
	h.Broadcast(ProgressMessage{Type: "status", Line: line})
}

// Finished implements domain.ProgressSink
func (h *ProgressHub) Finished(filename string) {
	h.Broadcast(ProgressMessage{Type: "finished", Filename: filename})
}

// Error implements domain.ProgressSink
func (h *ProgressHub) Error(message string) {
	h.Broadcast(ProgressMessage{Type: "error", Message: message})
}
