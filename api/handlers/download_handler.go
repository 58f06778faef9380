package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	downloadMgr *app.DownloadManager
	hub         *ProgressHub
	logger      *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadMgr *app.DownloadManager, hub *ProgressHub, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadMgr: downloadMgr,
		hub:         hub,
		logger:      logger,
	}
}

// StartDownloadRequest represents a request to download one URL
type StartDownloadRequest struct {
	URL       string `json:"url" binding:"required"`
	AudioOnly bool   `json:"audio_only"`
	Quality   string `json:"quality,omitempty"`
}

// DownloadResponse reports the outcome of a blocking download
type DownloadResponse struct {
	Success  bool     `json:"success"`
	Filename string   `json:"filename,omitempty"`
	Messages []string `json:"messages,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// BatchDownloadRequest represents a request to download several URLs
type BatchDownloadRequest struct {
	URLs      []string `json:"urls" binding:"required"`
	AudioOnly bool     `json:"audio_only"`
	Quality   string   `json:"quality,omitempty"`
}

// BatchDownloadResponse reports the outcome of a batch run
type BatchDownloadResponse struct {
	Tally    app.Tally `json:"tally"`
	Messages []string  `json:"messages,omitempty"`
	Errors   []string  `json:"errors,omitempty"`
}

// Download handles POST /api/v1/downloads. The transfer runs on the
// request goroutine; the response carries the final outcome while
// progress streams to WebSocket subscribers.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req StartDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quality := domain.Quality(req.Quality)
	if quality != "" {
		if err := domain.ValidateQuality(quality); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	collector := &collectingSink{}
	sink := newMultiSink(collector, h.hub)

	// context.Background keeps the transfer alive if the client
	// disconnects mid-download
	ok := h.downloadMgr.Download(context.Background(), domain.DownloadRequest{
		URL:       req.URL,
		AudioOnly: req.AudioOnly,
		Quality:   quality,
	}, sink)

	c.JSON(http.StatusOK, DownloadResponse{
		Success:  ok,
		Filename: collector.lastFinished(),
		Messages: collector.statuses,
		Errors:   collector.errors,
	})
}

// DownloadBatch handles POST /api/v1/downloads/batch
func (h *DownloadHandler) DownloadBatch(c *gin.Context) {
	var req BatchDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls must not be empty"})
		return
	}

	quality := domain.Quality(req.Quality)
	if quality != "" {
		if err := domain.ValidateQuality(quality); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	h.logger.Info("Batch download requested", zap.Int("urls", len(req.URLs)))

	collector := &collectingSink{}
	sink := newMultiSink(collector, h.hub)

	tally := h.downloadMgr.DownloadBatch(context.Background(), req.URLs, req.AudioOnly, quality, sink)

	c.JSON(http.StatusOK, BatchDownloadResponse{
		Tally:    tally,
		Messages: collector.statuses,
		Errors:   collector.errors,
	})
}
