package domain

import "context"

// DownloadRequest describes a single media transfer
type DownloadRequest struct {
	URL       string  `json:"url"`
	AudioOnly bool    `json:"audio_only"`
	Quality   Quality `json:"quality"`
}

// Extractor defines the interface to the external extraction tool
type Extractor interface {
	// GetInfo fetches metadata for a URL without transferring media
	GetInfo(ctx context.Context, url string) (*VideoMetadata, error)
	// Search issues a flattened search. For SearchKindPlaylist the query
	// is treated as a playlist reference and maxResults is ignored.
	Search(ctx context.Context, query string, maxResults int, kind SearchKind) ([]SearchResult, error)
	// Download transfers the media described by req, streaming progress
	// events to fn. It blocks until the transfer ends.
	Download(ctx context.Context, req DownloadRequest, fn ProgressFunc) error
}
