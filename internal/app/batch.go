package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

// selectionPause is the courtesy pause between selected-result downloads
const selectionPause = 1 * time.Second

// Tally summarizes a batch run
type Tally struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// DownloadBatch downloads each URL in order. Failures count toward the
// tally and never abort the remaining targets.
func (dm *DownloadManager) DownloadBatch(ctx context.Context, urls []string, audioOnly bool, quality domain.Quality, sink domain.ProgressSink) Tally {
	var tally Tally
	for i, url := range urls {
		sink.Status(fmt.Sprintf("Processing video %d/%d", i+1, len(urls)))

		req := domain.DownloadRequest{URL: url, AudioOnly: audioOnly, Quality: quality}
		if dm.Download(ctx, req, sink) {
			tally.Succeeded++
		} else {
			tally.Failed++
		}
		tally.Attempted++
	}

	dm.logger.Info("Batch download finished",
		zap.Int("attempted", tally.Attempted),
		zap.Int("succeeded", tally.Succeeded),
		zap.Int("failed", tally.Failed))
	sink.Status(fmt.Sprintf("Batch complete. Successful: %d | Failed: %d", tally.Succeeded, tally.Failed))
	return tally
}

// DownloadSelection downloads each selected search result in order,
// pausing briefly between items. Results without a usable URL fall back
// to the canonical watch URL for their ID.
func (dm *DownloadManager) DownloadSelection(ctx context.Context, results []domain.SearchResult, audioOnly bool, quality domain.Quality, sink domain.ProgressSink) Tally {
	var tally Tally
	for i, result := range results {
		if i > 0 {
			select {
			case <-time.After(selectionPause):
			case <-ctx.Done():
			}
		}

		sink.Status(fmt.Sprintf("Processing video %d/%d: %s", i+1, len(results), result.Title))

		req := domain.DownloadRequest{
			URL:       domain.ResolveWatchURL(result.URL, result.ID),
			AudioOnly: audioOnly,
			Quality:   quality,
		}
		if dm.Download(ctx, req, sink) {
			tally.Succeeded++
		} else {
			tally.Failed++
		}
		tally.Attempted++
	}

	dm.logger.Info("Selection download finished",
		zap.Int("attempted", tally.Attempted),
		zap.Int("succeeded", tally.Succeeded),
		zap.Int("failed", tally.Failed))
	sink.Status(fmt.Sprintf("Selected downloads complete. Successful: %d | Failed: %d", tally.Succeeded, tally.Failed))
	return tally
}
