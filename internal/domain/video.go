package domain

import (
	"fmt"
	"strings"
)

// Quality represents the requested quality cap for video downloads
type Quality string

const (
	QualityBest Quality = "best"
	Quality720p Quality = "720p"
	Quality480p Quality = "480p"
)

// SearchKind represents the kind of search to perform
type SearchKind string

const (
	SearchKindVideo    SearchKind = "video"    // keyword search
	SearchKindPlaylist SearchKind = "playlist" // query is a playlist reference
)

// WatchURLPrefix is used to synthesize a watch URL for entries that
// come back from a flattened search without a usable URL.
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// VideoMetadata holds the metadata-only view of a video, fetched
// before any media transfer happens.
type VideoMetadata struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int64  `json:"duration"`
	Uploader    string `json:"uploader"`
	UploadDate  string `json:"upload_date,omitempty"`
	ViewCount   int64  `json:"view_count"`
	Ext         string `json:"ext"`
	FileSize    int64  `json:"filesize"`
	WebpageURL  string `json:"webpage_url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// SearchResult is a single entry from a flattened search or playlist
// lookup. Entries are ephemeral; they live in a session, never in the
// history store.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Duration  int64  `json:"duration"`
	Uploader  string `json:"uploader,omitempty"`
	ViewCount int64  `json:"view_count"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// FormatSelector returns the yt-dlp format expression for this quality
func (q Quality) FormatSelector() string {
	switch q {
	case Quality720p:
		return "best[height<=720]"
	case Quality480p:
		return "best[height<=480]"
	default:
		return "best[height<=1080]"
	}
}

// ValidateQuality checks that q is one of the supported quality caps
func ValidateQuality(q Quality) error {
	switch q {
	case QualityBest, Quality720p, Quality480p:
		return nil
	}
	return fmt.Errorf("invalid quality %q (valid: best, 720p, 480p)", q)
}

// ValidateSearchKind checks that k names a supported search kind
func ValidateSearchKind(k SearchKind) error {
	switch k {
	case SearchKindVideo, SearchKindPlaylist:
		return nil
	}
	return fmt.Errorf("invalid search kind %q (valid: video, playlist)", k)
}

// ResolveWatchURL returns raw when it is already a fully-qualified URL,
// otherwise it synthesizes the watch URL from the entry id.
func ResolveWatchURL(raw, id string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return WatchURLPrefix + id
}
