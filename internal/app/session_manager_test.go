package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"go.uber.org/zap"
)

func testSearchResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: "abc", Title: "First", URL: "https://www.youtube.com/watch?v=abc"},
		{ID: "def", Title: "Second", URL: "https://www.youtube.com/watch?v=def"},
		{ID: "ghi", Title: "Third", URL: "https://www.youtube.com/watch?v=ghi"},
	}
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())

	created := sm.Create()
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.Results)
	assert.Empty(t, created.Selection)

	fetched, err := sm.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, 1, sm.Count())
}

func TestSessionManager_GetMissing(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())

	_, err := sm.Get("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestSessionManager_Delete(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())
	created := sm.Create()

	require.NoError(t, sm.Delete(created.ID))
	assert.Equal(t, 0, sm.Count())

	err := sm.Delete(created.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestSessionManager_SelectionFlow(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())
	created := sm.Create()

	require.NoError(t, sm.SetResults(created.ID, "test query", domain.SearchKindVideo, testSearchResults()))

	require.NoError(t, sm.Select(created.ID, "def"))
	require.NoError(t, sm.Select(created.ID, "abc"))
	// Selecting twice is a no-op
	require.NoError(t, sm.Select(created.ID, "def"))

	selected, err := sm.SelectedResults(created.ID)
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "def", selected[0].ID)
	assert.Equal(t, "abc", selected[1].ID)

	require.NoError(t, sm.Deselect(created.ID, "def"))
	selected, err = sm.SelectedResults(created.ID)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "abc", selected[0].ID)

	require.NoError(t, sm.ClearSelection(created.ID))
	selected, err = sm.SelectedResults(created.ID)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSessionManager_SelectUnknownResult(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())
	created := sm.Create()
	require.NoError(t, sm.SetResults(created.ID, "test query", domain.SearchKindVideo, testSearchResults()))

	err := sm.Select(created.ID, "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "result not in session")
}

func TestSessionManager_NewSearchResetsSelection(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())
	created := sm.Create()

	require.NoError(t, sm.SetResults(created.ID, "first query", domain.SearchKindVideo, testSearchResults()))
	require.NoError(t, sm.Select(created.ID, "abc"))

	require.NoError(t, sm.SetResults(created.ID, "second query", domain.SearchKindVideo, testSearchResults()[:1]))

	fetched, err := sm.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "second query", fetched.Query)
	assert.Len(t, fetched.Results, 1)
	assert.Empty(t, fetched.Selection)
}

func TestSessionManager_SnapshotIsolation(t *testing.T) {
	sm := NewSessionManager(zap.NewNop())
	created := sm.Create()
	require.NoError(t, sm.SetResults(created.ID, "test query", domain.SearchKindVideo, testSearchResults()))

	fetched, err := sm.Get(created.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the stored session
	fetched.Results[0].Title = "mutated"
	fetched.Selection = append(fetched.Selection, "abc")

	again, err := sm.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", again.Results[0].Title)
	assert.Empty(t, again.Selection)
}
