package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/format"
	"go.uber.org/zap"
)

// HistoryHandler handles download history requests
type HistoryHandler struct {
	store  domain.HistoryStore
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store domain.HistoryStore, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: logger,
	}
}

// HistoryEntry is a download record plus display-ready fields
type HistoryEntry struct {
	domain.DownloadRecord
	DurationFormatted string `json:"duration_formatted"`
	FileSizeFormatted string `json:"file_size_formatted"`
}

// HistoryResponse represents a history listing
type HistoryResponse struct {
	Total   int            `json:"total"`
	Count   int            `json:"count"`
	Entries []HistoryEntry `json:"entries"`
}

// List handles GET /api/v1/history. Entries come back most recent
// first; limit defaults to 20, limit=0 returns everything.
func (h *HistoryHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}

	records, err := h.store.Load()
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err))
		respondError(c, err)
		return
	}

	total := len(records)
	entries := make([]HistoryEntry, 0, total)
	for i := len(records) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		record := records[i]
		entries = append(entries, HistoryEntry{
			DownloadRecord:    record,
			DurationFormatted: format.Duration(record.Duration),
			FileSizeFormatted: format.FileSize(record.FileSize),
		})
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Total:   total,
		Count:   len(entries),
		Entries: entries,
	})
}

// StatsResponse represents history statistics
type StatsResponse struct {
	domain.HistoryStats
	TotalDurationFormatted string `json:"total_duration_formatted"`
}

// Stats handles GET /api/v1/history/stats
func (h *HistoryHandler) Stats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		h.logger.Error("Failed to compute history stats", zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		HistoryStats:           stats,
		TotalDurationFormatted: format.Duration(stats.TotalDuration),
	})
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		h.logger.Error("Failed to clear history", zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Download history cleared")
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
