package app

import (
	"fmt"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// ProgressReporter translates extractor progress events into sink updates.
// It is stateless; error reporting stays with the caller of Download.
type ProgressReporter struct {
	sink domain.ProgressSink
}

// NewProgressReporter creates a reporter writing to sink
func NewProgressReporter(sink domain.ProgressSink) *ProgressReporter {
	return &ProgressReporter{sink: sink}
}

// Handle processes one progress event
func (pr *ProgressReporter) Handle(event domain.ProgressEvent) {
	switch event.Status {
	case domain.ProgressDownloading:
		if event.TotalBytes > 0 {
			pr.sink.Progress(fraction(event.DownloadedBytes, event.TotalBytes))
		}
		pr.sink.Status(statusLine(event))
	case domain.ProgressFinished:
		pr.sink.Status(fmt.Sprintf("Download Complete: %s", event.Filename))
		pr.sink.Finished(event.Filename)
	}
}

// fraction clamps downloaded/total to [0,1]
func fraction(downloaded, total int64) float64 {
	f := float64(downloaded) / float64(total)
	if f > 1.0 {
		return 1.0
	}
	if f < 0 {
		return 0
	}
	return f
}

// statusLine composes the human-readable progress line for an event
func statusLine(event domain.ProgressEvent) string {
	percent := event.Percent
	if percent == "" {
		percent = "0%"
	}
	speed := event.Speed
	if speed == "" {
		speed = "0KB/s"
	}
	eta := event.ETA
	if eta == "" {
		eta = "Unknown"
	}
	return fmt.Sprintf("Downloading: %s | Speed: %s | ETA: %s", percent, speed, eta)
}
