package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

// SessionHandler handles interactive search session requests
type SessionHandler struct {
	sessions    *app.SessionManager
	downloadMgr *app.DownloadManager
	hub         *ProgressHub
	logger      *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *app.SessionManager, downloadMgr *app.DownloadManager, hub *ProgressHub, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		downloadMgr: downloadMgr,
		hub:         hub,
		logger:      logger,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	session := h.sessions.Create()
	c.JSON(http.StatusCreated, session)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

// SessionSearchRequest represents a search within a session
type SessionSearchRequest struct {
	Query      string `json:"query" binding:"required"`
	Kind       string `json:"kind,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// Search handles POST /api/v1/sessions/:id/search. The results are
// stored in the session and any previous selection is dropped.
func (h *SessionHandler) Search(c *gin.Context) {
	id := c.Param("id")

	var req SessionSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := domain.SearchKind(req.Kind)
	if kind == "" {
		kind = domain.SearchKindVideo
	}
	if err := domain.ValidateSearchKind(kind); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, message := h.downloadMgr.Search(c.Request.Context(), req.Query, req.MaxResults, kind)

	if err := h.sessions.SetResults(id, req.Query, kind, results); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:   req.Query,
		Kind:    kind,
		Count:   len(results),
		Results: results,
		Message: message,
	})
}

// SelectRequest names one search result within a session
type SelectRequest struct {
	ID string `json:"id" binding:"required"`
}

// Select handles POST /api/v1/sessions/:id/select
func (h *SessionHandler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Select(c.Param("id"), req.ID); err != nil {
		if errors.Is(err, app.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "selected"})
}

// Deselect handles POST /api/v1/sessions/:id/deselect
func (h *SessionHandler) Deselect(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Deselect(c.Param("id"), req.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deselected"})
}

// ClearSelection handles DELETE /api/v1/sessions/:id/selection
func (h *SessionHandler) ClearSelection(c *gin.Context) {
	if err := h.sessions.ClearSelection(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "selection cleared"})
}

// SessionDownloadRequest carries the options for downloading a selection
type SessionDownloadRequest struct {
	AudioOnly bool   `json:"audio_only"`
	Quality   string `json:"quality,omitempty"`
}

// DownloadSelection handles POST /api/v1/sessions/:id/download. It
// downloads every selected result sequentially and reports the tally.
func (h *SessionHandler) DownloadSelection(c *gin.Context) {
	id := c.Param("id")

	var req SessionDownloadRequest
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

	selected, err := h.sessions.SelectedResults(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no videos selected"})
		return
	}

	h.logger.Info("Selection download requested",
		zap.String("session_id", id),
		zap.Int("selected", len(selected)))

	collector := &collectingSink{}
	sink := newMultiSink(collector, h.hub)

	tally := h.downloadMgr.DownloadSelection(context.Background(), selected, req.AudioOnly, quality, sink)

	c.JSON(http.StatusOK, BatchDownloadResponse{
		Tally:    tally,
		Messages: collector.statuses,
		Errors:   collector.errors,
	})
}
