package app

import (
	"context"
	"fmt"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"go.uber.org/zap"
)

// DownloadManager coordinates metadata lookups, searches, and downloads,
// recording completed downloads in the history store
type DownloadManager struct {
	extractor domain.Extractor
	history   domain.HistoryStore
	notifier  *infrastructure.NotificationService
	config    *domain.DownloadConfig
	searchCfg *domain.SearchConfig
	logger    *zap.Logger
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	extractor domain.Extractor,
	history domain.HistoryStore,
	notifier *infrastructure.NotificationService,
	config *domain.DownloadConfig,
	searchCfg *domain.SearchConfig,
	logger *zap.Logger,
) *DownloadManager {
	return &DownloadManager{
		extractor: extractor,
		history:   history,
		notifier:  notifier,
		config:    config,
		searchCfg: searchCfg,
		logger:    logger,
	}
}

// GetInfo fetches metadata for a URL without downloading
func (dm *DownloadManager) GetInfo(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	meta, err := dm.extractor.GetInfo(ctx, url)
	if err != nil {
		dm.logger.Warn("Metadata fetch failed",
			zap.String("url", url),
			zap.Error(err))
		return nil, err
	}

	dm.logger.Info("Fetched video info",
		zap.String("url", url),
		zap.String("title", meta.Title))
	return meta, nil
}

// Search runs a search query. Failures degrade to an empty result set
// plus a user-facing message instead of an error.
func (dm *DownloadManager) Search(ctx context.Context, query string, maxResults int, kind domain.SearchKind) ([]domain.SearchResult, string) {
	if kind == "" {
		kind = domain.SearchKindVideo
	}
	if err := domain.ValidateSearchKind(kind); err != nil {
		return []domain.SearchResult{}, fmt.Sprintf("Search error: %v", err)
	}
	if maxResults <= 0 {
		maxResults = dm.searchCfg.DefaultMaxResults
	}

	results, err := dm.extractor.Search(ctx, query, maxResults, kind)
	if err != nil {
		dm.logger.Warn("Search failed",
			zap.String("query", query),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return []domain.SearchResult{}, fmt.Sprintf("Search error: %v", err)
	}

	dm.logger.Info("Search completed",
		zap.String("query", query),
		zap.String("kind", string(kind)),
		zap.Int("results", len(results)))
	return results, ""
}

// Download fetches metadata, runs the transfer, and appends a history
// record built from the pre-download metadata. Failures are reported
// through the sink and yield false; they are never returned as errors.
func (dm *DownloadManager) Download(ctx context.Context, req domain.DownloadRequest, sink domain.ProgressSink) bool {
	if req.Quality == "" {
		req.Quality = domain.QualityBest
	}
	if err := domain.ValidateQuality(req.Quality); err != nil {
		sink.Error(err.Error())
		return false
	}

	// Metadata fetch failure aborts before any transfer starts
	meta, err := dm.extractor.GetInfo(ctx, req.URL)
	if err != nil {
		dm.logger.Warn("Download aborted, metadata fetch failed",
			zap.String("url", req.URL),
			zap.Error(err))
		sink.Error(fmt.Sprintf("Error getting video info: %v", err))
		return false
	}

	dm.logger.Info("Starting download",
		zap.String("url", req.URL),
		zap.String("title", meta.Title),
		zap.Bool("audio_only", req.AudioOnly),
		zap.String("quality", string(req.Quality)))

	reporter := NewProgressReporter(sink)
	if err := dm.extractor.Download(ctx, req, reporter.Handle); err != nil {
		dm.logger.Error("Download failed",
			zap.String("url", req.URL),
			zap.String("title", meta.Title),
			zap.Error(err))
		sink.Error(fmt.Sprintf("Download failed: %v", err))
		if dm.notifier != nil {
			dm.notifier.NotifyDownloadFailed(meta.Title, err.Error())
		}
		return false
	}

	record := domain.NewDownloadRecord(meta, req.AudioOnly)
	if err := dm.history.Append(record); err != nil {
		dm.logger.Error("Failed to record download",
			zap.String("url", req.URL),
			zap.Error(err))
		sink.Error(fmt.Sprintf("Download failed: %v", err))
		return false
	}

	dm.logger.Info("Download completed",
		zap.String("url", req.URL),
		zap.String("title", meta.Title))
	if dm.notifier != nil {
		dm.notifier.NotifyDownloadCompleted(meta.Title)
	}
	return true
}
