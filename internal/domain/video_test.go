package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuality_FormatSelector(t *testing.T) {
	tests := []struct {
		quality  Quality
		expected string
	}{
		{QualityBest, "best[height<=1080]"},
		{Quality720p, "best[height<=720]"},
		{Quality480p, "best[height<=480]"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.quality.FormatSelector())
		})
	}
}

func TestValidateQuality(t *testing.T) {
	assert.NoError(t, ValidateQuality(QualityBest))
	assert.NoError(t, ValidateQuality(Quality720p))
	assert.NoError(t, ValidateQuality(Quality480p))
	assert.Error(t, ValidateQuality("1080p"))
	assert.Error(t, ValidateQuality(""))
}

func TestValidateSearchKind(t *testing.T) {
	assert.NoError(t, ValidateSearchKind(SearchKindVideo))
	assert.NoError(t, ValidateSearchKind(SearchKindPlaylist))
	assert.Error(t, ValidateSearchKind("channel"))
}

func TestResolveWatchURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		id       string
		expected string
	}{
		{"full https url kept", "https://www.youtube.com/watch?v=abc123", "abc123", "https://www.youtube.com/watch?v=abc123"},
		{"full http url kept", "http://youtu.be/abc123", "abc123", "http://youtu.be/abc123"},
		{"missing url synthesized", "", "abc123", "https://www.youtube.com/watch?v=abc123"},
		{"bare id synthesized", "abc123", "abc123", "https://www.youtube.com/watch?v=abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveWatchURL(tt.raw, tt.id))
		})
	}
}
