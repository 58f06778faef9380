package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session holds the ephemeral state of one interactive search flow:
// the last search, its results, and the entries selected for a batch
// download. Sessions are never persisted.
type Session struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Query     string         `json:"query,omitempty"`
	Kind      SearchKind     `json:"kind,omitempty"`
	Results   []SearchResult `json:"results"`
	Selection []string       `json:"selection"`
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Results:   []SearchResult{},
		Selection: []string{},
	}
}

// SetResults stores a fresh search and resets the selection
func (s *Session) SetResults(query string, kind SearchKind, results []SearchResult) {
	s.Query = query
	s.Kind = kind
	s.Results = results
	s.Selection = []string{}
}

// HasResult reports whether id names one of the current results
func (s *Session) HasResult(id string) bool {
	for _, r := range s.Results {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Select adds an entry id to the selection, keeping insertion order.
// Selecting an already-selected id is a no-op; ids must be unique.
// Returns false when the id is not among the current results.
func (s *Session) Select(id string) bool {
	if !s.HasResult(id) {
		return false
	}
	for _, sel := range s.Selection {
		if sel == id {
			return true
		}
	}
	s.Selection = append(s.Selection, id)
	return true
}

// Deselect removes an entry id from the selection
func (s *Session) Deselect(id string) {
	for i, sel := range s.Selection {
		if sel == id {
			s.Selection = append(s.Selection[:i], s.Selection[i+1:]...)
			return
		}
	}
}

// ClearSelection empties the selection
func (s *Session) ClearSelection() {
	s.Selection = []string{}
}

// SelectedResults returns the selected entries in selection order
func (s *Session) SelectedResults() []SearchResult {
	byID := make(map[string]SearchResult, len(s.Results))
	for _, r := range s.Results {
		byID[r.ID] = r
	}
	selected := make([]SearchResult, 0, len(s.Selection))
	for _, id := range s.Selection {
		if r, ok := byID[id]; ok {
			selected = append(selected, r)
		}
	}
	return selected
}
