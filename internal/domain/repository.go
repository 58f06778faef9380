package domain

// HistoryStore defines the interface for download history persistence
type HistoryStore interface {
	// Load returns every record in insertion order. A missing store
	// yields an empty slice, a corrupt one a MalformedHistoryError.
	Load() ([]DownloadRecord, error)
	// Append adds one record to the end of the history
	Append(record *DownloadRecord) error
	// Clear removes all records
	Clear() error
	// Stats summarizes the current history
	Stats() (HistoryStats, error)
}
