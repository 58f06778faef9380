package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourusername/yt-grab-go/internal/format"
)

var (
	serverURL   string
	noAutoStart bool
	rootCmd     = &cobra.Command{
		Use:   "ytgrab",
		Short: "YTGrab CLI - Search and download YouTube videos",
		Long:  `A command-line interface for searching YouTube and downloading videos or audio through a ytgrab server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(statusCmd)
}

// ensureServer checks if server is running and starts it if needed (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

// apiGet issues a GET against the server and returns the response body,
// exiting the process on transport errors or non-200 responses.
func apiGet(path string) []byte {
	resp, err := http.Get(serverURL + path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	return body
}

// apiPost issues a JSON POST and returns the response body, exiting the
// process unless the server answers with wantStatus.
func apiPost(path string, payload interface{}, wantStatus int) []byte {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	resp, err := http.Post(serverURL+path, "application/json", reqBody)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	return body
}

// apiDelete issues a DELETE and returns the response body, exiting the
// process on transport errors or non-200 responses.
func apiDelete(path string) []byte {
	req, err := http.NewRequest(http.MethodDelete, serverURL+path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}
	return body
}

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Show video metadata without downloading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		q := url.Values{}
		q.Set("url", args[0])
		body := apiGet("/api/v1/videos/info?" + q.Encode())

		var info struct {
			ID         string `json:"id"`
			Title      string `json:"title"`
			Duration   int64  `json:"duration"`
			Uploader   string `json:"uploader"`
			UploadDate string `json:"upload_date"`
			ViewCount  int64  `json:"view_count"`
			Ext        string `json:"ext"`
			FileSize   int64  `json:"filesize"`
			WebpageURL string `json:"webpage_url"`
		}
		json.Unmarshal(body, &info)

		printHeader(info.Title)
		fmt.Printf("  Uploader: %s\n", info.Uploader)
		fmt.Printf("  Duration: %s\n", format.Duration(info.Duration))
		fmt.Printf("  Views:    %d\n", info.ViewCount)
		fmt.Printf("  Format:   %s\n", info.Ext)
		fmt.Printf("  Size:     %s\n", format.FileSize(info.FileSize))
		if info.UploadDate != "" {
			fmt.Printf("  Uploaded: %s\n", info.UploadDate)
		}
		fmt.Printf("  URL:      %s\n", info.WebpageURL)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search YouTube for videos or playlists",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		maxResults, _ := cmd.Flags().GetInt("max")
		playlist, _ := cmd.Flags().GetBool("playlist")

		q := url.Values{}
		q.Set("q", args[0])
		if playlist {
			q.Set("kind", "playlist")
		}
		if maxResults > 0 {
			q.Set("max_results", strconv.Itoa(maxResults))
		}
		body := apiGet("/api/v1/videos/search?" + q.Encode())

		var result struct {
			Count   int    `json:"count"`
			Message string `json:"message"`
			Results []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Duration int64  `json:"duration"`
				Uploader string `json:"uploader"`
			} `json:"results"`
		}
		json.Unmarshal(body, &result)

		if result.Message != "" {
			printWarning(result.Message)
		}
		if result.Count == 0 {
			printInfo("No results found")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTITLE\tUPLOADER\tDURATION\tID")
		for i, r := range result.Results {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				i+1,
				truncate(r.Title, 50),
				truncate(r.Uploader, 20),
				format.Duration(r.Duration),
				r.ID)
		}
		w.Flush()
	},
}

type downloadOutcome struct {
	Success  bool     `json:"success"`
	Filename string   `json:"filename"`
	Messages []string `json:"messages"`
	Errors   []string `json:"errors"`
}

type batchOutcome struct {
	Tally struct {
		Attempted int `json:"attempted"`
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	} `json:"tally"`
	Messages []string `json:"messages"`
	Errors   []string `json:"errors"`
}

var downloadCmd = &cobra.Command{
	Use:   "download [urls...]",
	Short: "Download one or more videos",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		audioOnly, _ := cmd.Flags().GetBool("audio")
		quality, _ := cmd.Flags().GetString("quality")

		if len(args) == 1 {
			runSingleDownload(args[0], audioOnly, quality)
			return
		}
		runBatchDownload(args, audioOnly, quality)
	},
}

func runSingleDownload(videoURL string, audioOnly bool, quality string) {
	printInfo("Downloading " + videoURL)

	payload := map[string]interface{}{
		"url":        videoURL,
		"audio_only": audioOnly,
	}
	if quality != "" {
		payload["quality"] = quality
	}

	stop, streaming := followProgress()
	body := apiPost("/api/v1/downloads", payload, http.StatusOK)
	stop()

	var result downloadOutcome
	json.Unmarshal(body, &result)

	if !streaming {
		for _, m := range result.Messages {
			printDetail(m)
		}
	}
	for _, e := range result.Errors {
		printError(e)
	}
	if !result.Success {
		os.Exit(1)
	}
	if result.Filename != "" {
		printSuccess("Download Complete: " + result.Filename)
	} else {
		printSuccess("Download complete")
	}
}

func runBatchDownload(urls []string, audioOnly bool, quality string) {
	printInfo(fmt.Sprintf("Downloading %d videos", len(urls)))

	payload := map[string]interface{}{
		"urls":       urls,
		"audio_only": audioOnly,
	}
	if quality != "" {
		payload["quality"] = quality
	}

	stop, streaming := followProgress()
	body := apiPost("/api/v1/downloads/batch", payload, http.StatusOK)
	stop()

	var result batchOutcome
	json.Unmarshal(body, &result)

	if !streaming {
		for _, m := range result.Messages {
			printDetail(m)
		}
	}
	for _, e := range result.Errors {
		printError(e)
	}

	summary := fmt.Sprintf("Successful: %d | Failed: %d", result.Tally.Succeeded, result.Tally.Failed)
	if result.Tally.Failed > 0 {
		printWarning(summary)
	} else {
		printSuccess(summary)
	}
	if result.Tally.Succeeded == 0 && result.Tally.Failed > 0 {
		os.Exit(1)
	}
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show download history",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		limit, _ := cmd.Flags().GetInt("limit")
		body := apiGet("/api/v1/history?limit=" + strconv.Itoa(limit))

		var result struct {
			Total   int `json:"total"`
			Count   int `json:"count"`
			Entries []struct {
				Title             string `json:"title"`
				Uploader          string `json:"uploader"`
				DownloadDate      string `json:"download_date"`
				Format            string `json:"format"`
				DurationFormatted string `json:"duration_formatted"`
				FileSizeFormatted string `json:"file_size_formatted"`
			} `json:"entries"`
		}
		json.Unmarshal(body, &result)

		if result.Total == 0 {
			printInfo("No download history")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tUPLOADER\tDURATION\tSIZE\tFORMAT\tDOWNLOADED")
		for _, e := range result.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				truncate(e.Title, 40),
				truncate(e.Uploader, 20),
				e.DurationFormatted,
				e.FileSizeFormatted,
				e.Format,
				e.DownloadDate)
		}
		w.Flush()
		fmt.Printf("\nShowing %d of %d downloads\n", result.Count, result.Total)
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		body := apiGet("/api/v1/history/stats")
		var stats struct {
			TotalDownloads         int    `json:"total_downloads"`
			UniqueUploaders        int    `json:"unique_uploaders"`
			TotalDurationFormatted string `json:"total_duration_formatted"`
		}
		json.Unmarshal(body, &stats)

		fmt.Println("Download Statistics:")
		fmt.Printf("  Total downloads:  %d\n", stats.TotalDownloads)
		fmt.Printf("  Total duration:   %s\n", stats.TotalDurationFormatted)
		fmt.Printf("  Unique uploaders: %d\n", stats.UniqueUploaders)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the download history",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		apiDelete("/api/v1/history")
		printSuccess("Download history cleared")
	},
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List downloaded files",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		body := apiGet("/api/v1/files")
		var result struct {
			Count              int    `json:"count"`
			TotalSizeFormatted string `json:"total_size_formatted"`
			Files              []struct {
				Name          string    `json:"name"`
				SizeFormatted string    `json:"size_formatted"`
				ModifiedAt    time.Time `json:"modified_at"`
			} `json:"files"`
		}
		json.Unmarshal(body, &result)

		if result.Count == 0 {
			printInfo("No downloaded files")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
		for _, f := range result.Files {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				truncate(f.Name, 60),
				f.SizeFormatted,
				f.ModifiedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		fmt.Printf("\n%d files, %s total\n", result.Count, result.TotalSizeFormatted)
	},
}

var filesGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Fetch a downloaded file from the server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		saveFile(args[0])
	},
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a downloaded file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		apiDelete("/api/v1/files/" + url.PathEscape(args[0]))
		printSuccess("Deleted " + args[0])
	},
}

var filesZipCmd = &cobra.Command{
	Use:   "zip",
	Short: "Bundle all downloaded files into a zip archive and fetch it",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		body := apiPost("/api/v1/archive", nil, http.StatusCreated)
		var archive struct {
			Filename string `json:"filename"`
		}
		json.Unmarshal(body, &archive)

		printInfo("Archive created: " + archive.Filename)
		saveFile(archive.Filename)
	},
}

// saveFile streams a server-side file into the current directory
func saveFile(name string) {
	resp, err := http.Get(serverURL + "/api/v1/files/" + url.PathEscape(name))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		os.Exit(1)
	}

	out, err := os.Create(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSuccess(fmt.Sprintf("Saved %s (%s)", name, format.FileSize(n)))
}

var logsCmd = &cobra.Command{
	Use:   "logs [category]",
	Short: "View server logs (download, http, error)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		category := "download"
		if len(args) == 1 {
			category = args[0]
		}
		limit, _ := cmd.Flags().GetInt("limit")
		date, _ := cmd.Flags().GetString("date")
		search, _ := cmd.Flags().GetString("search")
		follow, _ := cmd.Flags().GetBool("follow")

		if follow {
			followLogs(category)
			return
		}

		q := url.Values{}
		q.Set("limit", strconv.Itoa(limit))
		path := "/api/v1/logs/" + url.PathEscape(category)
		if search != "" {
			q.Set("q", search)
			path += "/search"
		} else if date != "" {
			q.Set("date", date)
		}
		body := apiGet(path + "?" + q.Encode())

		var result struct {
			Count   int        `json:"count"`
			Entries []logEntry `json:"entries"`
		}
		json.Unmarshal(body, &result)

		if result.Count == 0 {
			printInfo("No log entries found")
			return
		}
		for _, e := range result.Entries {
			printLogEntry(e)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/health")
		if err != nil {
			printWarning("Server is not running at " + serverURL)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var health struct {
			Version string `json:"version"`
			YTDLP   struct {
				Available bool `json:"available"`
			} `json:"ytdlp"`
		}
		json.Unmarshal(body, &health)

		printSuccess("Server is running")
		fmt.Printf("  URL:     %s\n", serverURL)
		fmt.Printf("  Version: %s\n", health.Version)
		if health.YTDLP.Available {
			fmt.Println("  yt-dlp:  available")
		} else {
			printWarning("  yt-dlp:  not found on server")
		}
	},
}

func init() {
	searchCmd.Flags().IntP("max", "m", 0, "Maximum number of results (server default if 0)")
	searchCmd.Flags().BoolP("playlist", "p", false, "Treat the query as a playlist reference")
	downloadCmd.Flags().BoolP("audio", "a", false, "Download audio only (MP3)")
	downloadCmd.Flags().StringP("quality", "q", "", "Video quality (best, 720p, 480p)")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
	filesCmd.AddCommand(filesGetCmd)
	filesCmd.AddCommand(filesDeleteCmd)
	filesCmd.AddCommand(filesZipCmd)
	logsCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	logsCmd.Flags().String("date", "", "Log date (YYYY-MM-DD, default today)")
	logsCmd.Flags().StringP("search", "s", "", "Only show entries containing text")
	logsCmd.Flags().BoolP("follow", "f", false, "Stream new entries as they are written")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
