//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/yt-grab-go/api"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"github.com/yourusername/yt-grab-go/pkg/logger"
)

// stubExtractor stands in for yt-dlp so the full HTTP stack can run
// without network access or the real binary.
type stubExtractor struct {
	meta      *domain.VideoMetadata
	infoErr   error
	results   []domain.SearchResult
	searchErr error
	events    []domain.ProgressEvent
	failURLs  map[string]bool
}

func (s *stubExtractor) GetInfo(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	meta := *s.meta
	return &meta, nil
}

func (s *stubExtractor) Search(ctx context.Context, query string, maxResults int, kind domain.SearchKind) ([]domain.SearchResult, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.results, nil
}

func (s *stubExtractor) Download(ctx context.Context, req domain.DownloadRequest, fn domain.ProgressFunc) error {
	if s.failURLs[req.URL] {
		return errors.New("network interrupted")
	}
	for _, event := range s.events {
		fn(event)
	}
	return nil
}

func defaultStub() *stubExtractor {
	return &stubExtractor{
		meta: &domain.VideoMetadata{
			ID:         "dQw4w9WgXcQ",
			Title:      "Test Video",
			Duration:   212,
			Uploader:   "Test Channel",
			Ext:        "mp4",
			FileSize:   52428800,
			WebpageURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		results: []domain.SearchResult{
			{ID: "abc", Title: "First Video", URL: "https://www.youtube.com/watch?v=abc", Duration: 100, Uploader: "Channel A"},
			{ID: "def", Title: "Second Video", URL: "https://www.youtube.com/watch?v=def", Duration: 200, Uploader: "Channel B"},
		},
		events: []domain.ProgressEvent{
			{Status: domain.ProgressDownloading, Percent: "50.0%", Speed: "1.00MiB/s", ETA: "00:05", DownloadedBytes: 26214400, TotalBytes: 52428800},
			{Status: domain.ProgressFinished, Filename: "Test Video.mp4"},
		},
		failURLs: map[string]bool{},
	}
}

type testEnv struct {
	server    *httptest.Server
	extractor *stubExtractor
	outputDir string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	outputDir, err := os.MkdirTemp("", "ytgrab-int-downloads-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(outputDir) })

	logsDir, err := os.MkdirTemp("", "ytgrab-int-logs-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(logsDir) })

	historyDir, err := os.MkdirTemp("", "ytgrab-int-history-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(historyDir) })

	multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{Level: "info", LogsDir: logsDir})
	require.NoError(t, err)
	t.Cleanup(func() { multiLog.Close() })

	cfg := domain.DefaultConfig()
	cfg.Download.OutputDir = outputDir
	cfg.Download.LogsDir = logsDir

	extractor := defaultStub()
	historyStore := infrastructure.NewJSONHistoryStore(filepath.Join(historyDir, "download_history.json"))
	fileMgr := infrastructure.NewFileManager(outputDir)

	downloadMgr := app.NewDownloadManager(extractor, historyStore, nil, &cfg.Download, &cfg.Search, multiLog.Download())
	sessionMgr := app.NewSessionManager(multiLog.HTTP())

	router := api.SetupRouter(downloadMgr, sessionMgr, historyStore, fileMgr, logger.NewLoggerAdapter(multiLog), logsDir, "yt-dlp")
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, extractor: extractor, outputDir: outputDir}
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, payload interface{}, out interface{}) int {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func doDelete(t *testing.T, url string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAPI_Health(t *testing.T) {
	env := setupTestServer(t)

	var health map[string]interface{}
	status := getJSON(t, env.server.URL+"/health", &health)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", health["status"])
	assert.NotEmpty(t, health["version"])
}

func TestAPI_VideoInfo(t *testing.T) {
	env := setupTestServer(t)

	var info map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/videos/info?url=https://youtu.be/dQw4w9WgXcQ", &info)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test Video", info["title"])
	assert.Equal(t, "Test Channel", info["uploader"])
	assert.Equal(t, float64(212), info["duration"])
}

func TestAPI_VideoInfo_MissingURL(t *testing.T) {
	env := setupTestServer(t)

	status := getJSON(t, env.server.URL+"/api/v1/videos/info", nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_VideoInfo_ExtractionFailure(t *testing.T) {
	env := setupTestServer(t)
	env.extractor.infoErr = &domain.ExtractionError{Op: "info", URL: "https://youtu.be/x", Err: errors.New("video unavailable")}

	status := getJSON(t, env.server.URL+"/api/v1/videos/info?url=https://youtu.be/x", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestAPI_Search(t *testing.T) {
	env := setupTestServer(t)

	var result map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/videos/search?q=test&max_results=5", &result)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), result["count"])
	assert.Empty(t, result["message"])
}

func TestAPI_Search_FailsSoft(t *testing.T) {
	env := setupTestServer(t)
	env.extractor.searchErr = errors.New("network down")

	var result map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/videos/search?q=test", &result)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), result["count"])
	assert.Contains(t, result["message"], "Search error")
}

func TestAPI_Search_InvalidKind(t *testing.T) {
	env := setupTestServer(t)

	status := getJSON(t, env.server.URL+"/api/v1/videos/search?q=test&kind=channel", nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Download(t *testing.T) {
	env := setupTestServer(t)

	var result map[string]interface{}
	status := postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, &result)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Test Video.mp4", result["filename"])

	var history map[string]interface{}
	getJSON(t, env.server.URL+"/api/v1/history", &history)
	assert.Equal(t, float64(1), history["total"], "a completed download must be recorded")
}

func TestAPI_Download_Failure(t *testing.T) {
	env := setupTestServer(t)
	env.extractor.failURLs["https://www.youtube.com/watch?v=broken"] = true

	var result map[string]interface{}
	status := postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{
		"url": "https://www.youtube.com/watch?v=broken",
	}, &result)

	require.Equal(t, http.StatusOK, status, "download failures are reported in the body, not as HTTP faults")
	assert.Equal(t, false, result["success"])
	require.NotEmpty(t, result["errors"])
	assert.Contains(t, result["errors"].([]interface{})[0], "Download failed")

	var history map[string]interface{}
	getJSON(t, env.server.URL+"/api/v1/history", &history)
	assert.Equal(t, float64(0), history["total"], "failed downloads leave no history record")
}

func TestAPI_Download_InvalidQuality(t *testing.T) {
	env := setupTestServer(t)

	status := postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{
		"url":     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"quality": "4k",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_BatchDownload(t *testing.T) {
	env := setupTestServer(t)
	env.extractor.failURLs["https://www.youtube.com/watch?v=broken"] = true

	var result map[string]interface{}
	status := postJSON(t, env.server.URL+"/api/v1/downloads/batch", map[string]interface{}{
		"urls": []string{
			"https://www.youtube.com/watch?v=one",
			"https://www.youtube.com/watch?v=broken",
			"https://www.youtube.com/watch?v=three",
		},
	}, &result)

	require.Equal(t, http.StatusOK, status)
	tally := result["tally"].(map[string]interface{})
	assert.Equal(t, float64(3), tally["attempted"])
	assert.Equal(t, float64(2), tally["succeeded"])
	assert.Equal(t, float64(1), tally["failed"])
}

func TestAPI_HistoryLifecycle(t *testing.T) {
	env := setupTestServer(t)

	for _, url := range []string{"https://youtu.be/a", "https://youtu.be/b"} {
		postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{"url": url}, nil)
	}

	var history map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/history", &history)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), history["total"])

	var stats map[string]interface{}
	getJSON(t, env.server.URL+"/api/v1/history/stats", &stats)
	assert.Equal(t, float64(2), stats["total_downloads"])
	assert.Equal(t, float64(1), stats["unique_uploaders"])

	status = doDelete(t, env.server.URL+"/api/v1/history")
	require.Equal(t, http.StatusOK, status)

	getJSON(t, env.server.URL+"/api/v1/history", &history)
	assert.Equal(t, float64(0), history["total"])
}

func TestAPI_SessionFlow(t *testing.T) {
	env := setupTestServer(t)

	var session map[string]interface{}
	status := postJSON(t, env.server.URL+"/api/v1/sessions", nil, &session)
	require.Equal(t, http.StatusCreated, status)
	sessionID := session["id"].(string)
	require.NotEmpty(t, sessionID)

	base := env.server.URL + "/api/v1/sessions/" + sessionID

	var searchResult map[string]interface{}
	status = postJSON(t, base+"/search", map[string]interface{}{"query": "test"}, &searchResult)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), searchResult["count"])

	status = postJSON(t, base+"/select", map[string]interface{}{"id": "abc"}, nil)
	require.Equal(t, http.StatusOK, status)
	status = postJSON(t, base+"/select", map[string]interface{}{"id": "def"}, nil)
	require.Equal(t, http.StatusOK, status)
	status = postJSON(t, base+"/deselect", map[string]interface{}{"id": "def"}, nil)
	require.Equal(t, http.StatusOK, status)

	var result map[string]interface{}
	status = postJSON(t, base+"/download", map[string]interface{}{}, &result)
	require.Equal(t, http.StatusOK, status)
	tally := result["tally"].(map[string]interface{})
	assert.Equal(t, float64(1), tally["attempted"])
	assert.Equal(t, float64(1), tally["succeeded"])

	status = doDelete(t, base)
	assert.Equal(t, http.StatusOK, status)
	status = getJSON(t, base, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_Session_SelectUnknownResult(t *testing.T) {
	env := setupTestServer(t)

	var session map[string]interface{}
	postJSON(t, env.server.URL+"/api/v1/sessions", nil, &session)
	base := env.server.URL + "/api/v1/sessions/" + session["id"].(string)

	postJSON(t, base+"/search", map[string]interface{}{"query": "test"}, nil)
	status := postJSON(t, base+"/select", map[string]interface{}{"id": "nope"}, nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Session_DownloadWithoutSelection(t *testing.T) {
	env := setupTestServer(t)

	var session map[string]interface{}
	postJSON(t, env.server.URL+"/api/v1/sessions", nil, &session)
	base := env.server.URL + "/api/v1/sessions/" + session["id"].(string)

	status := postJSON(t, base+"/download", map[string]interface{}{}, nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Files(t *testing.T) {
	env := setupTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(env.outputDir, "a.mp4"), []byte("video-bytes"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(env.outputDir, "b.mp3"), []byte("audio-bytes"), 0644))

	var list map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/files", &list)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), list["count"])

	resp, err := http.Get(env.server.URL + "/api/v1/files/a.mp4")
	require.NoError(t, err)
	body := new(bytes.Buffer)
	body.ReadFrom(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "video-bytes", body.String())

	status = doDelete(t, env.server.URL+"/api/v1/files/a.mp4")
	require.Equal(t, http.StatusOK, status)
	status = getJSON(t, env.server.URL+"/api/v1/files/a.mp4", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = doDelete(t, env.server.URL+"/api/v1/files/missing.mp4")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_Archive(t *testing.T) {
	env := setupTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(env.outputDir, "a.mp4"), []byte("video-bytes"), 0644))

	var archive map[string]interface{}
	status := postJSON(t, env.server.URL+"/api/v1/archive", nil, &archive)

	require.Equal(t, http.StatusCreated, status)
	filename := archive["filename"].(string)
	assert.Contains(t, filename, ".zip")
	_, err := os.Stat(filepath.Join(env.outputDir, filename))
	assert.NoError(t, err, "the archive must land in the downloads directory")
}

func TestAPI_Archive_NoFiles(t *testing.T) {
	env := setupTestServer(t)

	status := postJSON(t, env.server.URL+"/api/v1/archive", nil, nil)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Logs(t *testing.T) {
	env := setupTestServer(t)

	// A download writes structured entries to the download category
	postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, nil)

	var logs map[string]interface{}
	status := getJSON(t, env.server.URL+"/api/v1/logs/download", &logs)
	require.Equal(t, http.StatusOK, status)
	assert.Greater(t, logs["count"], float64(0))

	var categories map[string]interface{}
	getJSON(t, env.server.URL+"/api/v1/logs/categories", &categories)
	assert.Len(t, categories["categories"], 3)

	status = getJSON(t, env.server.URL+"/api/v1/logs/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}
