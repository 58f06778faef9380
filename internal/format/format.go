// Package format renders durations and byte counts the way the CLI
// tables and API listings present them.
package format

import "fmt"

// Duration renders a duration in seconds as h:m:s, or m:s below one
// hour, without zero padding. Zero or negative durations are unknown.
func Duration(seconds int64) string {
	if seconds <= 0 {
		return "Unknown"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%d:%d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%d", minutes, secs)
}

// FileSize renders a byte count with one decimal place and the first
// unit in B, KB, MB, GB that brings the value under 1024, topping out
// at TB. Zero or negative counts are unknown.
func FileSize(bytes int64) string {
	if bytes <= 0 {
		return "Unknown"
	}
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}
