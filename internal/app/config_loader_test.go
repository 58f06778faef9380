package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	dir, err := os.MkdirTemp("", "ytgrab-config-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeTestConfig(t, `
server:
  host: 0.0.0.0
  port: 9090
download:
  output_dir: /tmp/videos
search:
  default_max_results: 25
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "/tmp/videos", config.Download.OutputDir)
	assert.Equal(t, 25, config.Search.DefaultMaxResults)

	// Unset keys keep their defaults
	assert.Equal(t, "logs", config.Download.LogsDir)
	assert.Equal(t, "yt-dlp", config.Download.YTDLPBinary)
	assert.Equal(t, "progress/download_history.json", config.History.FilePath)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	dir, err := os.MkdirTemp("", "ytgrab-config-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(cwd) })

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "downloads", config.Download.OutputDir)
	assert.Equal(t, 10, config.Search.DefaultMaxResults)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	path := writeTestConfig(t, `
server:
  port: 99999
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestLoadConfig_InvalidMaxResults(t *testing.T) {
	path := writeTestConfig(t, `
search:
  default_max_results: 0
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max results")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"tilde prefix", "~/videos", filepath.Join(home, "videos")},
		{"home variable", "$HOME/videos", filepath.Join(home, "videos")},
		{"plain path", "/tmp/videos", "/tmp/videos"},
		{"relative path", "downloads", "downloads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandPath(tt.path))
		})
	}
}
