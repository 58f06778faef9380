package domain

import "fmt"

// ExtractionError reports a failure of the external extraction tool
type ExtractionError struct {
	Op  string // info, search or download
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("extraction %s failed for %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("extraction %s failed: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// FilesystemError reports a failed filesystem operation
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// MalformedHistoryError reports a history file that exists but cannot
// be parsed. It is surfaced instead of being treated as empty so a
// corrupt log is never silently overwritten by the next append.
type MalformedHistoryError struct {
	Path string
	Err  error
}

func (e *MalformedHistoryError) Error() string {
	return fmt.Sprintf("malformed history file %s: %v", e.Path, e.Err)
}

func (e *MalformedHistoryError) Unwrap() error { return e.Err }
