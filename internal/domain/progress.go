package domain

// ProgressStatus represents the phase of a transfer
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressFinished    ProgressStatus = "finished"
)

// ProgressEvent is one progress update emitted during a transfer
type ProgressEvent struct {
	Status          ProgressStatus `json:"status"`
	Percent         string         `json:"percent,omitempty"`
	Speed           string         `json:"speed,omitempty"`
	ETA             string         `json:"eta,omitempty"`
	DownloadedBytes int64          `json:"downloaded_bytes,omitempty"`
	TotalBytes      int64          `json:"total_bytes,omitempty"`
	Filename        string         `json:"filename,omitempty"`
}

// ProgressFunc receives progress events during a transfer
type ProgressFunc func(event ProgressEvent)

// ProgressSink is where user-facing download feedback goes. Implementations
// decide how to render it (terminal line, WebSocket broadcast, log entry).
type ProgressSink interface {
	// Progress reports overall completion as a fraction in [0,1]
	Progress(fraction float64)
	// Status reports a human-readable status line
	Status(line string)
	// Finished reports the completed file
	Finished(filename string)
	// Error reports a failure message without aborting the caller
	Error(message string)
}
