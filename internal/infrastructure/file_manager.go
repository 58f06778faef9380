package infrastructure

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// ErrNoFiles is returned by CreateZip when there is nothing to archive
var ErrNoFiles = errors.New("no files to archive")

// FileEntry describes one stored download
type FileEntry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// FileManager handles the stored-downloads directory: listing,
// archiving and deletion. It never descends into subdirectories.
type FileManager struct {
	dir string
}

// NewFileManager creates a file manager over the given directory
func NewFileManager(dir string) *FileManager {
	return &FileManager{dir: dir}
}

// Dir returns the managed directory
func (m *FileManager) Dir() string {
	return m.dir
}

// List returns the regular files in the directory, sorted by name.
// A directory that does not exist yet is an empty listing.
func (m *FileManager) List() ([]FileEntry, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []FileEntry{}, nil
		}
		return nil, &domain.FilesystemError{Op: "list", Path: m.dir, Err: err}
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileEntry{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// TotalSize returns the file count and cumulative size in bytes
func (m *FileManager) TotalSize() (int, int64, error) {
	files, err := m.List()
	if err != nil {
		return 0, 0, err
	}
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return len(files), total, nil
}

// Resolve maps a bare filename onto its path inside the managed
// directory, rejecting anything that could escape it.
func (m *FileManager) Resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", &domain.FilesystemError{Op: "resolve", Path: name, Err: errors.New("invalid file name")}
	}
	return filepath.Join(m.dir, name), nil
}

// Delete removes a single stored file
func (m *FileManager) Delete(name string) error {
	path, err := m.Resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return &domain.FilesystemError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// CreateZip archives every current non-zip file into a timestamped
// archive inside the directory and returns the archive's name. When a
// second call lands within the same second the name is renewed with a
// numeric suffix instead of overwriting the first archive.
func (m *FileManager) CreateZip() (string, error) {
	files, err := m.List()
	if err != nil {
		return "", err
	}

	candidates := make([]FileEntry, 0, len(files))
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f.Name), ".zip") {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return "", ErrNoFiles
	}

	name := fmt.Sprintf("downloads_%s.zip", time.Now().Format("20060102_150405"))
	path := renewPath(filepath.Join(m.dir, name))

	archive, err := os.Create(path)
	if err != nil {
		return "", &domain.FilesystemError{Op: "create zip", Path: path, Err: err}
	}
	defer archive.Close()

	writer := zip.NewWriter(archive)
	for _, f := range candidates {
		if err := addToZip(writer, filepath.Join(m.dir, f.Name), f.Name); err != nil {
			writer.Close()
			os.Remove(path)
			return "", &domain.FilesystemError{Op: "zip", Path: f.Name, Err: err}
		}
	}
	if err := writer.Close(); err != nil {
		os.Remove(path)
		return "", &domain.FilesystemError{Op: "zip", Path: path, Err: err}
	}

	return filepath.Base(path), nil
}

// addToZip stores one file under its bare name in the archive
func addToZip(w *zip.Writer, path, name string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entry, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(entry, file)
	return err
}

// renewPath returns path unchanged when it is free, otherwise appends
// " (1)", " (2)", ... before the extension until an unused name is found
func renewPath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
