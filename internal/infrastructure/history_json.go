package infrastructure

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// JSONHistoryStore implements domain.HistoryStore on top of a single
// pretty-printed JSON array file. Every append is a read-modify-write
// of the whole array; the mutex keeps in-process writers from
// interleaving those cycles.
type JSONHistoryStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONHistoryStore creates a history store backed by the given file
func NewJSONHistoryStore(path string) *JSONHistoryStore {
	return &JSONHistoryStore{path: path}
}

// Load returns every record in insertion order
func (s *JSONHistoryStore) Load() ([]domain.DownloadRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the file without taking the lock. A missing file is an
// empty history; a file that exists but does not parse is surfaced as
// a MalformedHistoryError so a later append cannot clobber it.
func (s *JSONHistoryStore) load() ([]domain.DownloadRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.DownloadRecord{}, nil
		}
		return nil, &domain.FilesystemError{Op: "read", Path: s.path, Err: err}
	}

	var records []domain.DownloadRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &domain.MalformedHistoryError{Path: s.path, Err: err}
	}
	if records == nil {
		records = []domain.DownloadRecord{}
	}
	return records, nil
}

// Append adds one record to the end of the history
func (s *JSONHistoryStore) Append(record *domain.DownloadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records = append(records, *record)
	return s.write(records)
}

// Clear removes all records
func (s *JSONHistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write([]domain.DownloadRecord{})
}

// Stats summarizes the current history
func (s *JSONHistoryStore) Stats() (domain.HistoryStats, error) {
	records, err := s.Load()
	if err != nil {
		return domain.HistoryStats{}, err
	}
	return domain.ComputeStats(records), nil
}

// write persists the full record slice, creating the parent directory
// on first use
func (s *JSONHistoryStore) write(records []domain.DownloadRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &domain.FilesystemError{Op: "create directory", Path: dir, Err: err}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &domain.FilesystemError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return &domain.FilesystemError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
