package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

// VideoHandler handles metadata and search requests
type VideoHandler struct {
	downloadMgr *app.DownloadManager
	logger      *zap.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(downloadMgr *app.DownloadManager, logger *zap.Logger) *VideoHandler {
	return &VideoHandler{
		downloadMgr: downloadMgr,
		logger:      logger,
	}
}

// GetInfo handles GET /api/v1/videos/info
func (h *VideoHandler) GetInfo(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'url' is required"})
		return
	}

	meta, err := h.downloadMgr.GetInfo(c.Request.Context(), url)
	if err != nil {
		h.logger.Warn("Info request failed", zap.String("url", url), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

// SearchResponse represents a search response. Message carries the
// user-facing reason when a search degraded to an empty result set.
type SearchResponse struct {
	Query   string                `json:"query"`
	Kind    domain.SearchKind     `json:"kind"`
	Count   int                   `json:"count"`
	Results []domain.SearchResult `json:"results"`
	Message string                `json:"message,omitempty"`
}

// Search handles GET /api/v1/videos/search
func (h *VideoHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	kind := domain.SearchKind(c.DefaultQuery("kind", string(domain.SearchKindVideo)))
	if err := domain.ValidateSearchKind(kind); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", "0"))
	if err != nil || maxResults < 0 {
		maxResults = 0
	}

	results, message := h.downloadMgr.Search(c.Request.Context(), query, maxResults, kind)

	c.JSON(http.StatusOK, SearchResponse{
		Query:   query,
		Kind:    kind,
		Count:   len(results),
		Results: results,
		Message: message,
	})
}
