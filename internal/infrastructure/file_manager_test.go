package infrastructure

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestFileManager(t *testing.T) (*FileManager, string, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "files-test-*")
	require.NoError(t, err)

	manager := NewFileManager(tmpDir)
	cleanup := func() {
		os.RemoveAll(tmpDir)
	}
	return manager, tmpDir, cleanup
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFileManager_List(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	writeTestFile(t, dir, "video.mp4", "aaaa")
	writeTestFile(t, dir, "audio.mp3", "bb")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0755))

	files, err := manager.List()

	require.NoError(t, err)
	require.Len(t, files, 2, "subdirectories are not listed")
	assert.Equal(t, "audio.mp3", files[0].Name)
	assert.Equal(t, int64(2), files[0].Size)
	assert.Equal(t, "video.mp4", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestFileManager_List_MissingDirectory(t *testing.T) {
	manager := NewFileManager("/tmp/does-not-exist-anywhere-12345")

	files, err := manager.List()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileManager_TotalSize(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	writeTestFile(t, dir, "a.mp4", "aaaa")
	writeTestFile(t, dir, "b.mp3", "bb")

	count, total, err := manager.TotalSize()

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(6), total)
}

func TestFileManager_Resolve(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	path, err := manager.Resolve("video.mp4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "video.mp4"), path)
}

func TestFileManager_Resolve_RejectsEscapes(t *testing.T) {
	manager, _, cleanup := setupTestFileManager(t)
	defer cleanup()

	for _, name := range []string{"", ".", "..", "../evil", "a/b.mp4", `a\b.mp4`} {
		t.Run(name, func(t *testing.T) {
			_, err := manager.Resolve(name)
			assert.Error(t, err)
		})
	}
}

func TestFileManager_Delete(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	writeTestFile(t, dir, "video.mp4", "aaaa")

	require.NoError(t, manager.Delete("video.mp4"))

	_, err := os.Stat(filepath.Join(dir, "video.mp4"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileManager_Delete_Missing(t *testing.T) {
	manager, _, cleanup := setupTestFileManager(t)
	defer cleanup()

	err := manager.Delete("nope.mp4")

	assert.Error(t, err)
}

func TestFileManager_CreateZip(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	writeTestFile(t, dir, "video.mp4", "aaaa")
	writeTestFile(t, dir, "audio.mp3", "bb")
	writeTestFile(t, dir, "old.zip", "zzz")

	name, err := manager.CreateZip()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "downloads_"))
	assert.True(t, strings.HasSuffix(name, ".zip"))

	reader, err := zip.OpenReader(filepath.Join(dir, name))
	require.NoError(t, err)
	defer reader.Close()

	var archived []string
	for _, f := range reader.File {
		archived = append(archived, f.Name)
	}
	assert.ElementsMatch(t, []string{"video.mp4", "audio.mp3"}, archived, "existing zips are excluded")
}

func TestFileManager_CreateZip_Empty(t *testing.T) {
	manager, _, cleanup := setupTestFileManager(t)
	defer cleanup()

	_, err := manager.CreateZip()

	assert.True(t, errors.Is(err, ErrNoFiles))
}

func TestFileManager_CreateZip_RenewsCollidingName(t *testing.T) {
	manager, dir, cleanup := setupTestFileManager(t)
	defer cleanup()

	writeTestFile(t, dir, "video.mp4", "aaaa")

	first, err := manager.CreateZip()
	require.NoError(t, err)
	second, err := manager.CreateZip()
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "a second archive within the same second must not overwrite the first")

	_, err = os.Stat(filepath.Join(dir, first))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, second))
	assert.NoError(t, err)
}

func TestRenewPath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "renew-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "archive.zip")
	assert.Equal(t, path, renewPath(path), "free path is kept")

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	renewed := renewPath(path)
	assert.Equal(t, filepath.Join(tmpDir, "archive (1).zip"), renewed)

	require.NoError(t, os.WriteFile(renewed, []byte("x"), 0644))
	assert.Equal(t, filepath.Join(tmpDir, "archive (2).zip"), renewPath(path))
}
