package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogEntry represents a parsed log entry. Lines that are not JSON
// (raw yt-dlp output in the download log) are wrapped as plain info
// messages.
type LogEntry struct {
	Timestamp string                 `json:"ts"`
	Level     string                 `json:"level"`
	Message   string                 `json:"msg"`
	Category  string                 `json:"category,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// LogReader reads and streams the date-stamped category log files
type LogReader struct {
	logsDir string
}

// NewLogReader creates a new log reader
func NewLogReader(logsDir string) *LogReader {
	return &LogReader{
		logsDir: logsDir,
	}
}

// GetLogPath returns the path to a category log file for a specific date
func (lr *LogReader) GetLogPath(category LogCategory, date time.Time) string {
	dateStr := date.Format("20060102")
	filename := fmt.Sprintf("%s-%s.log", category, dateStr)
	return filepath.Join(lr.logsDir, filename)
}

// GetTodayLogPath returns the path to today's log file for a category
func (lr *LogReader) GetTodayLogPath(category LogCategory) string {
	return lr.GetLogPath(category, time.Now())
}

// ReadLogs reads the last limit entries from a category log file.
// A limit of zero or less reads the whole file. A missing file is an
// empty log.
func (lr *LogReader) ReadLogs(category LogCategory, date time.Time, limit int) ([]LogEntry, error) {
	logPath := lr.GetLogPath(category, date)

	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	startIdx := 0
	if limit > 0 && len(lines) > limit {
		startIdx = len(lines) - limit
	}

	entries := make([]LogEntry, 0, len(lines)-startIdx)
	for _, line := range lines[startIdx:] {
		if line == "" {
			continue
		}
		entries = append(entries, parseLogLine(line, category))
	}
	return entries, nil
}

// ReadTodayLogs reads today's log entries for a category
func (lr *LogReader) ReadTodayLogs(category LogCategory, limit int) ([]LogEntry, error) {
	return lr.ReadLogs(category, time.Now(), limit)
}

// SearchLogs returns the entries whose message or level contains query,
// case-insensitively, keeping at most the last limit matches
func (lr *LogReader) SearchLogs(category LogCategory, date time.Time, query string, limit int) ([]LogEntry, error) {
	entries, err := lr.ReadLogs(category, date, 0)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	var filtered []LogEntry
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Message), query) ||
			strings.Contains(strings.ToLower(entry.Level), query) {
			filtered = append(filtered, entry)
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered, nil
}

// TailLogs follows today's log file for a category, sending new entries
// to entryChan until stopChan closes. The file may not exist yet; the
// tail waits for it to appear.
func (lr *LogReader) TailLogs(category LogCategory, entryChan chan<- LogEntry, stopChan <-chan struct{}) error {
	logPath := lr.GetTodayLogPath(category)

	var file *os.File
	for {
		var err error
		file, err = os.Open(logPath)
		if err == nil {
			break
		}
		if !os.IsNotExist(err) {
			return err
		}
		select {
		case <-stopChan:
			return nil
		case <-time.After(1 * time.Second):
		}
	}
	defer file.Close()

	// Only stream entries written from now on
	file.Seek(0, io.SeekEnd)
	reader := bufio.NewReader(file)

	for {
		select {
		case <-stopChan:
			return nil
		default:
			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					time.Sleep(100 * time.Millisecond)
					continue
				}
				return err
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			select {
			case entryChan <- parseLogLine(line, category):
			case <-stopChan:
				return nil
			}
		}
	}
}

// parseLogLine decodes one JSON log line, moving keys beyond the
// standard trio into Fields. Non-JSON lines become plain info entries.
func parseLogLine(line string, category LogCategory) LogEntry {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{
			Timestamp: time.Now().Format(time.RFC3339),
			Level:     "info",
			Message:   line,
			Category:  string(category),
		}
	}

	entry := LogEntry{Category: string(category)}
	if ts, ok := raw["ts"].(string); ok {
		entry.Timestamp = ts
		delete(raw, "ts")
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = level
		delete(raw, "level")
	}
	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
		delete(raw, "msg")
	}
	if len(raw) > 0 {
		entry.Fields = raw
	}
	return entry
}
