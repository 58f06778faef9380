package domain

import "time"

// DownloadRecord is one line of the download history. Records are
// immutable once written; the only destructive operation is clearing
// the whole history.
type DownloadRecord struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Duration     int64  `json:"duration"`
	Uploader     string `json:"uploader"`
	DownloadDate string `json:"download_date"`
	FileSize     int64  `json:"file_size"`
	Format       string `json:"format"`
}

// NewDownloadRecord builds a record from the metadata fetched before
// the transfer. FileSize and Format therefore reflect the pre-download
// estimate, not the final artifact.
func NewDownloadRecord(meta *VideoMetadata, audioOnly bool) *DownloadRecord {
	format := meta.Ext
	if audioOnly {
		format = "mp3"
	}
	if format == "" {
		format = "unknown"
	}
	return &DownloadRecord{
		Title:        meta.Title,
		URL:          meta.WebpageURL,
		Duration:     meta.Duration,
		Uploader:     meta.Uploader,
		DownloadDate: time.Now().Format("2006-01-02 15:04:05"),
		FileSize:     meta.FileSize,
		Format:       format,
	}
}

// HistoryStats summarizes the download history
type HistoryStats struct {
	TotalDownloads  int   `json:"total_downloads"`
	TotalDuration   int64 `json:"total_duration"`
	UniqueUploaders int   `json:"unique_uploaders"`
}

// ComputeStats aggregates a record slice into summary figures
func ComputeStats(records []DownloadRecord) HistoryStats {
	uploaders := make(map[string]struct{})
	var totalDuration int64
	for _, r := range records {
		totalDuration += r.Duration
		if r.Uploader != "" {
			uploaders[r.Uploader] = struct{}{}
		}
	}
	return HistoryStats{
		TotalDownloads:  len(records),
		TotalDuration:   totalDuration,
		UniqueUploaders: len(uploaders),
	}
}
