package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/pkg/logger"
	"go.uber.org/zap"
)

// Progress lines look like:
// [download]  42.3% of ~  10.51MiB at    2.34MiB/s ETA 00:15
var (
	percentRe = regexp.MustCompile(`\[download\]\s+(\d+\.?\d*)%`)
	totalRe   = regexp.MustCompile(`of\s+~?\s*([\d.]+)([KMGT]?i?B)`)
	speedRe   = regexp.MustCompile(`at\s+(\S+)`)
	etaRe     = regexp.MustCompile(`ETA\s+(\S+)`)
)

// YTDLPExtractor implements domain.Extractor by shelling out to the
// yt-dlp binary.
type YTDLPExtractor struct {
	binary      string
	outputDir   string
	logsDir     string
	eventLogger *logger.MultiLogger // for structured events only
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor(config *domain.DownloadConfig, eventLogger *logger.MultiLogger) *YTDLPExtractor {
	binary := config.YTDLPBinary
	if binary == "" {
		binary = "yt-dlp"
	}
	return &YTDLPExtractor{
		binary:      binary,
		outputDir:   config.OutputDir,
		logsDir:     config.LogsDir,
		eventLogger: eventLogger,
	}
}

// GetInfo fetches metadata for a URL without transferring any media
func (e *YTDLPExtractor) GetInfo(ctx context.Context, url string) (*domain.VideoMetadata, error) {
	if url == "" {
		return nil, &domain.ExtractionError{Op: "info", Err: errors.New("empty url")}
	}

	args := []string{"--dump-json", "--skip-download", "--no-warnings", url}
	out, err := e.run(ctx, args)
	if err != nil {
		return nil, &domain.ExtractionError{Op: "info", URL: url, Err: err}
	}

	var info map[string]interface{}
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, &domain.ExtractionError{Op: "info", URL: url, Err: fmt.Errorf("unexpected yt-dlp output: %w", err)}
	}

	return metadataFromMap(info, url), nil
}

// Search issues a flattened search query. For SearchKindPlaylist the
// query is handed to yt-dlp as a playlist reference and maxResults is
// ignored; otherwise it becomes a ytsearchN: keyword search.
func (e *YTDLPExtractor) Search(ctx context.Context, query string, maxResults int, kind domain.SearchKind) ([]domain.SearchResult, error) {
	if query == "" {
		return nil, &domain.ExtractionError{Op: "search", Err: errors.New("empty query")}
	}

	target := searchTarget(query, maxResults, kind)
	args := []string{"--dump-single-json", "--flat-playlist", "--no-warnings", target}
	out, err := e.run(ctx, args)
	if err != nil {
		return nil, &domain.ExtractionError{Op: "search", URL: target, Err: err}
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, &domain.ExtractionError{Op: "search", URL: target, Err: fmt.Errorf("unexpected yt-dlp output: %w", err)}
	}

	entries, ok := payload["entries"].([]interface{})
	if !ok {
		return []domain.SearchResult{}, nil
	}

	results := make([]domain.SearchResult, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		results = append(results, searchResultFromEntry(entry))
	}
	return results, nil
}

// Download transfers the requested media, streaming parsed progress
// lines to fn and mirroring the raw tool output into the dated
// download log. It blocks until yt-dlp exits.
func (e *YTDLPExtractor) Download(ctx context.Context, req domain.DownloadRequest, fn domain.ProgressFunc) error {
	if req.URL == "" {
		return &domain.ExtractionError{Op: "download", Err: errors.New("empty url")}
	}
	if fn == nil {
		fn = func(domain.ProgressEvent) {}
	}

	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return &domain.FilesystemError{Op: "create directory", Path: e.outputDir, Err: err}
	}

	args := e.buildDownloadArgs(req)

	// Raw yt-dlp output is appended to the dated download log with
	// start/end markers, same file the log API reads.
	downloadLog, err := e.openLogFile()
	if err != nil {
		return &domain.FilesystemError{Op: "open log", Path: e.logsDir, Err: err}
	}
	defer downloadLog.Close()

	cmdLine := ShellEscapeCommand(e.binary, args...)
	e.writeLogHeader(downloadLog, req.URL, cmdLine)

	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = downloadLog
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &domain.ExtractionError{Op: "download", URL: req.URL, Err: err}
	}

	if err := cmd.Start(); err != nil {
		e.writeLogFooter(downloadLog, false, fmt.Sprintf("yt-dlp failed to start: %v", err))
		return &domain.ExtractionError{Op: "download", URL: req.URL, Err: err}
	}

	if e.eventLogger != nil {
		e.eventLogger.LogDownloadEvent("download started",
			zap.String("url", req.URL),
			zap.Bool("audio_only", req.AudioOnly),
			zap.String("quality", string(req.Quality)))
	}

	var lastDest string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		downloadLog.WriteString(line + "\n")

		if dest, ok := parseDestination(line); ok {
			lastDest = dest
			continue
		}
		if event, ok := parseProgressLine(line); ok {
			fn(event)
		}
	}

	if err := cmd.Wait(); err != nil {
		e.writeLogFooter(downloadLog, false, fmt.Sprintf("yt-dlp failed: %v", err))
		if e.eventLogger != nil {
			e.eventLogger.LogDownloadEvent("download failed",
				zap.String("url", req.URL),
				zap.Error(err))
		}
		return &domain.ExtractionError{Op: "download", URL: req.URL, Err: err}
	}

	filename := ""
	if lastDest != "" {
		filename = filepath.Base(lastDest)
	}
	e.writeLogFooter(downloadLog, true, fmt.Sprintf("Downloaded: %s", filename))
	if e.eventLogger != nil {
		e.eventLogger.LogDownloadEvent("download completed",
			zap.String("url", req.URL),
			zap.String("filename", filename))
	}

	fn(domain.ProgressEvent{Status: domain.ProgressFinished, Filename: filename})
	return nil
}

// searchTarget builds the yt-dlp search target. Playlist lookups pass
// the query through untouched and ignore maxResults.
func searchTarget(query string, maxResults int, kind domain.SearchKind) string {
	if kind == domain.SearchKindPlaylist {
		return query
	}
	if maxResults <= 0 {
		maxResults = 1
	}
	return fmt.Sprintf("ytsearch%d:%s", maxResults, query)
}

// run executes yt-dlp capturing stdout; stderr is folded into the error
func (e *YTDLPExtractor) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, e.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// buildDownloadArgs assembles the yt-dlp invocation for a request
func (e *YTDLPExtractor) buildDownloadArgs(req domain.DownloadRequest) []string {
	args := []string{
		"--progress",
		"--newline",
		"--no-warnings",
		"--no-playlist",
		"-o", filepath.Join(e.outputDir, "%(title)s.%(ext)s"),
	}

	if req.AudioOnly {
		args = append(args,
			"-f", "bestaudio/best",
			"-x",
			"--audio-format", "mp3",
			"--audio-quality", "192K")
	} else {
		args = append(args, "-f", req.Quality.FormatSelector())
	}

	return append(args, req.URL)
}

// openLogFile opens the download log file for today
func (e *YTDLPExtractor) openLogFile() (*os.File, error) {
	if err := os.MkdirAll(e.logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	dateStr := time.Now().Format("20060102")
	logPath := filepath.Join(e.logsDir, "download-"+dateStr+".log")
	return os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// writeLogHeader writes the download start marker
func (e *YTDLPExtractor) writeLogHeader(file *os.File, url, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	file.WriteString(fmt.Sprintf("\n=== [%s] Download: %s ===\n", timestamp, url))
	file.WriteString(fmt.Sprintf("$ %s\n", cmdLine))
}

// writeLogFooter writes the download end marker
func (e *YTDLPExtractor) writeLogFooter(file *os.File, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	file.WriteString(fmt.Sprintf("[%s] %s: %s\n", timestamp, status, message))
	file.WriteString("=== END ===\n\n")
}

// parseDestination extracts the output path from the yt-dlp lines that
// name it. Post-processor destinations overwrite earlier ones, so an
// audio extraction ends up reporting the .mp3.
func parseDestination(line string) (string, bool) {
	for _, prefix := range []string{"[download] Destination: ", "[ExtractAudio] Destination: "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	if strings.HasPrefix(line, `[Merger] Merging formats into "`) {
		rest := strings.TrimPrefix(line, `[Merger] Merging formats into "`)
		return strings.TrimSuffix(rest, `"`), true
	}
	if strings.HasPrefix(line, "[download] ") && strings.HasSuffix(line, " has already been downloaded") {
		name := strings.TrimPrefix(line, "[download] ")
		return strings.TrimSuffix(name, " has already been downloaded"), true
	}
	return "", false
}

// parseProgressLine turns a [download] percentage line into an event
func parseProgressLine(line string) (domain.ProgressEvent, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return domain.ProgressEvent{}, false
	}

	event := domain.ProgressEvent{
		Status:  domain.ProgressDownloading,
		Percent: m[1] + "%",
	}

	if tm := totalRe.FindStringSubmatch(line); tm != nil {
		event.TotalBytes = parseByteSize(tm[1], tm[2])
		if percent, err := strconv.ParseFloat(m[1], 64); err == nil && event.TotalBytes > 0 {
			event.DownloadedBytes = int64(percent / 100 * float64(event.TotalBytes))
		}
	}
	if sm := speedRe.FindStringSubmatch(line); sm != nil {
		event.Speed = sm[1]
	}
	if em := etaRe.FindStringSubmatch(line); em != nil {
		event.ETA = em[1]
	}

	return event, true
}

// parseByteSize converts a yt-dlp size like ("10.51", "MiB") to bytes
func parseByteSize(value, unit string) int64 {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	multipliers := map[string]float64{
		"B":   1,
		"KiB": 1 << 10,
		"MiB": 1 << 20,
		"GiB": 1 << 30,
		"TiB": 1 << 40,
		"KB":  1e3,
		"MB":  1e6,
		"GB":  1e9,
		"TB":  1e12,
	}
	mult, ok := multipliers[unit]
	if !ok {
		return 0
	}
	return int64(v * mult)
}

// metadataFromMap maps a yt-dlp info JSON object onto VideoMetadata.
// The estimated size falls back to filesize_approx when the exact
// filesize is absent, which is common before a transfer.
func metadataFromMap(info map[string]interface{}, url string) *domain.VideoMetadata {
	meta := &domain.VideoMetadata{
		ID:          getStringFromMap(info, "id"),
		Title:       getStringFromMap(info, "title"),
		Description: getStringFromMap(info, "description"),
		Duration:    getInt64FromMap(info, "duration"),
		Uploader:    getStringFromMap(info, "uploader"),
		UploadDate:  getStringFromMap(info, "upload_date"),
		ViewCount:   getInt64FromMap(info, "view_count"),
		Ext:         getStringFromMap(info, "ext"),
		FileSize:    getInt64FromMap(info, "filesize"),
		WebpageURL:  getStringFromMap(info, "webpage_url"),
		Thumbnail:   getStringFromMap(info, "thumbnail"),
	}
	if meta.FileSize == 0 {
		meta.FileSize = getInt64FromMap(info, "filesize_approx")
	}
	if meta.WebpageURL == "" {
		meta.WebpageURL = url
	}
	if meta.Title == "" {
		meta.Title = "Unknown"
	}
	if meta.Uploader == "" {
		meta.Uploader = "Unknown"
	}
	return meta
}

// searchResultFromEntry maps one flat-playlist entry onto a SearchResult
func searchResultFromEntry(entry map[string]interface{}) domain.SearchResult {
	id := getStringFromMap(entry, "id")
	result := domain.SearchResult{
		ID:        id,
		Title:     getStringFromMap(entry, "title"),
		URL:       domain.ResolveWatchURL(getStringFromMap(entry, "url"), id),
		Duration:  getInt64FromMap(entry, "duration"),
		Uploader:  getStringFromMap(entry, "uploader"),
		ViewCount: getInt64FromMap(entry, "view_count"),
	}
	if result.Uploader == "" {
		result.Uploader = getStringFromMap(entry, "channel")
	}
	if thumbs, ok := entry["thumbnails"].([]interface{}); ok && len(thumbs) > 0 {
		if thumb, ok := thumbs[0].(map[string]interface{}); ok {
			result.Thumbnail = getStringFromMap(thumb, "url")
		}
	}
	return result
}

// getStringFromMap safely extracts a string from a map
func getStringFromMap(data map[string]interface{}, key string) string {
	if val, ok := data[key].(string); ok {
		return val
	}
	return ""
}

// getInt64FromMap safely extracts a numeric value from a decoded JSON map
func getInt64FromMap(data map[string]interface{}, key string) int64 {
	if val, ok := data[key].(float64); ok {
		return int64(val)
	}
	return 0
}
