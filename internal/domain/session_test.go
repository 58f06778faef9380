package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testResults() []SearchResult {
	return []SearchResult{
		{ID: "one", Title: "First"},
		{ID: "two", Title: "Second"},
		{ID: "three", Title: "Third"},
	}
}

func TestNewSession(t *testing.T) {
	session := NewSession()

	assert.NotEmpty(t, session.ID)
	assert.Empty(t, session.Results)
	assert.Empty(t, session.Selection)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestSession_SetResults(t *testing.T) {
	session := NewSession()
	session.SetResults("go tutorials", SearchKindVideo, testResults())
	session.Select("one")

	session.SetResults("other query", SearchKindVideo, testResults()[:1])

	assert.Equal(t, "other query", session.Query)
	assert.Len(t, session.Results, 1)
	assert.Empty(t, session.Selection, "new results must reset the selection")
}

func TestSession_Select(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())

	assert.True(t, session.Select("two"))
	assert.True(t, session.Select("one"))
	assert.Equal(t, []string{"two", "one"}, session.Selection)
}

func TestSession_Select_DuplicateIsNoOp(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())

	assert.True(t, session.Select("one"))
	assert.True(t, session.Select("one"))

	assert.Equal(t, []string{"one"}, session.Selection)
}

func TestSession_Select_UnknownID(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())

	assert.False(t, session.Select("missing"))
	assert.Empty(t, session.Selection)
}

func TestSession_Deselect(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())
	session.Select("one")
	session.Select("two")

	session.Deselect("one")

	assert.Equal(t, []string{"two"}, session.Selection)
}

func TestSession_SelectedResults(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())
	session.Select("three")
	session.Select("one")

	selected := session.SelectedResults()

	assert.Len(t, selected, 2)
	assert.Equal(t, "three", selected[0].ID)
	assert.Equal(t, "one", selected[1].ID)
}

func TestSession_ClearSelection(t *testing.T) {
	session := NewSession()
	session.SetResults("q", SearchKindVideo, testResults())
	session.Select("one")

	session.ClearSelection()

	assert.Empty(t, session.Selection)
}
