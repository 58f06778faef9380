package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound reports an unknown session id
	ErrSessionNotFound = errors.New("session not found")
	// ErrResultNotInSession reports a selection of an id absent from
	// the session's current results
	ErrResultNotInSession = errors.New("result not in session")
)

// SessionManager owns the in-memory search sessions. All reads and
// mutations go through the manager so concurrent API requests never
// touch a session without the lock.
type SessionManager struct {
	sessions map[string]*domain.Session
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewSessionManager creates an empty session manager
func NewSessionManager(logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*domain.Session),
		logger:   logger,
	}
}

// Create starts a new session and returns a snapshot of it
func (sm *SessionManager) Create() domain.Session {
	session := domain.NewSession()

	sm.mu.Lock()
	sm.sessions[session.ID] = session
	sm.mu.Unlock()

	sm.logger.Info("Session created", zap.String("session_id", session.ID))
	return snapshot(session)
}

// Get returns a snapshot of a session
func (sm *SessionManager) Get(id string) (domain.Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, ok := sm.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return snapshot(session), nil
}

// Delete removes a session
func (sm *SessionManager) Delete(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(sm.sessions, id)
	return nil
}

// Count returns the number of live sessions
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// SetResults stores a fresh search in a session, resetting its selection
func (sm *SessionManager) SetResults(id, query string, kind domain.SearchKind, results []domain.SearchResult) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.SetResults(query, kind, results)
	return nil
}

// Select adds a result id to a session's selection
func (sm *SessionManager) Select(id, resultID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if !session.Select(resultID) {
		return fmt.Errorf("%w: %s", ErrResultNotInSession, resultID)
	}
	return nil
}

// Deselect removes a result id from a session's selection
func (sm *SessionManager) Deselect(id, resultID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.Deselect(resultID)
	return nil
}

// ClearSelection empties a session's selection
func (sm *SessionManager) ClearSelection(id string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, ok := sm.sessions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.ClearSelection()
	return nil
}

// SelectedResults returns the selected entries of a session in
// selection order
func (sm *SessionManager) SelectedResults(id string) ([]domain.SearchResult, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, ok := sm.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session.SelectedResults(), nil
}

// snapshot copies a session so callers can read it without the lock
func snapshot(session *domain.Session) domain.Session {
	copied := *session
	copied.Results = append([]domain.SearchResult{}, session.Results...)
	copied.Selection = append([]string{}, session.Selection...)
	return copied
}
