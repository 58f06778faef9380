package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yourusername/yt-grab-go/pkg/logger"
	"go.uber.org/zap"
)

// LogWebSocketHandler streams log entries to WebSocket clients
type LogWebSocketHandler struct {
	logReader *logger.LogReader
	logger    *zap.Logger
}

// NewLogWebSocketHandler creates a new WebSocket handler
func NewLogWebSocketHandler(logsDir string, log *zap.Logger) *LogWebSocketHandler {
	return &LogWebSocketHandler{
		logReader: logger.NewLogReader(logsDir),
		logger:    log,
	}
}

// HandleWebSocket handles WebSocket connections for log streaming. The
// client picks a category via the query string; the stream starts with
// the last 50 entries of today's log and then follows the file.
func (h *LogWebSocketHandler) HandleWebSocket(c *gin.Context) {
	categoryStr := c.Query("category")
	if categoryStr == "" {
		categoryStr = string(logger.CategoryDownload)
	}
	if !logger.ValidCategory(categoryStr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}
	category := logger.LogCategory(categoryStr)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("Log subscriber connected",
		zap.String("category", string(category)),
		zap.String("remote_addr", c.Request.RemoteAddr))

	// Send initial logs (last 50 entries)
	entries, err := h.logReader.ReadTodayLogs(category, 50)
	if err == nil {
		for _, entry := range entries {
			data, _ := json.Marshal(entry)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Error("Failed to send initial logs", zap.Error(err))
				return
			}
		}
	}

	// Follow the log file
	entryChan := make(chan logger.LogEntry, 100)
	stopChan := make(chan struct{})
	defer close(stopChan)

	go func() {
		if err := h.logReader.TailLogs(category, entryChan, stopChan); err != nil {
			h.logger.Error("Log tailing error", zap.Error(err))
		}
	}()

	// Read messages from client to detect disconnects
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
		case entry := <-entryChan:
			data, err := json.Marshal(entry)
			if err != nil {
				h.logger.Error("Failed to marshal log entry", zap.Error(err))
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// Ping keeps the connection alive
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
