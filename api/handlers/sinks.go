package handlers

import (
	"strings"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// collectingSink gathers progress updates so a blocking download request
// can return them in its response body. Downloads run synchronously on
// the request goroutine, so no locking is needed.
type collectingSink struct {
	statuses []string
	finished []string
	errors   []string
}

func (s *collectingSink) Progress(fraction float64) {}

// Status records a status line. Consecutive transfer progress lines
// replace each other so the response carries one progress line per
// file instead of one per hook event.
func (s *collectingSink) Status(line string) {
	if n := len(s.statuses); n > 0 &&
		strings.HasPrefix(line, "Downloading:") &&
		strings.HasPrefix(s.statuses[n-1], "Downloading:") {
		s.statuses[n-1] = line
		return
	}
	s.statuses = append(s.statuses, line)
}

func (s *collectingSink) Finished(filename string) {
	s.finished = append(s.finished, filename)
}

func (s *collectingSink) Error(message string) {
	s.errors = append(s.errors, message)
}

// lastFinished returns the most recently completed filename
func (s *collectingSink) lastFinished() string {
	if len(s.finished) == 0 {
		return ""
	}
	return s.finished[len(s.finished)-1]
}

// multiSink fans sink updates out to several destinations
type multiSink struct {
	sinks []domain.ProgressSink
}

func newMultiSink(sinks ...domain.ProgressSink) *multiSink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Progress(fraction float64) {
	for _, s := range m.sinks {
		s.Progress(fraction)
	}
}

func (m *multiSink) Status(line string) {
	for _, s := range m.sinks {
		s.Status(line)
	}
}

func (m *multiSink) Finished(filename string) {
	for _, s := range m.sinks {
		s.Finished(filename)
	}
}

func (m *multiSink) Error(message string) {
	for _, s := range m.sinks {
		s.Error(message)
	}
}
