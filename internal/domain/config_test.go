package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "downloads", config.Download.OutputDir)
	assert.Equal(t, "yt-dlp", config.Download.YTDLPBinary)
	assert.Equal(t, "progress/download_history.json", config.History.FilePath)
	assert.Equal(t, 10, config.Search.DefaultMaxResults)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}
