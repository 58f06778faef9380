package handlers

import (
	"net/http"
	"os/exec"

	"github.com/gin-gonic/gin"
)

const serverVersion = "1.0.0"

// HealthHandler handles health check requests
type HealthHandler struct {
	ytdlpBinary string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ytdlpBinary string) *HealthHandler {
	return &HealthHandler{
		ytdlpBinary: ytdlpBinary,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	YTDLP   struct {
		Available bool `json:"available"`
	} `json:"ytdlp"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "ok",
		Version: serverVersion,
	}
	_, err := exec.LookPath(h.ytdlpBinary)
	response.YTDLP.Available = err == nil

	c.JSON(http.StatusOK, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := exec.LookPath(h.ytdlpBinary); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "yt-dlp binary not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
