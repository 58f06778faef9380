package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"zero", 0, "Unknown"},
		{"negative", -5, "Unknown"},
		{"seconds only", 59, "0:59"},
		{"minutes and seconds", 125, "2:5"},
		{"exact minute", 60, "1:0"},
		{"hours", 3661, "1:1:1"},
		{"exact hour", 3600, "1:0:0"},
		{"long video", 7325, "2:2:5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Duration(tt.seconds))
		})
	}
}

func TestFileSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero", 0, "Unknown"},
		{"negative", -1, "Unknown"},
		{"bytes", 500, "500.0 B"},
		{"one kilobyte", 1024, "1.0 KB"},
		{"one and a half kilobytes", 1536, "1.5 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"one gigabyte", 1073741824, "1.0 GB"},
		{"terabytes", 2199023255552, "2.0 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FileSize(tt.bytes))
		})
	}
}
