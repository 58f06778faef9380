package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// batchManifest is the YAML file accepted by the batch command:
//
//	downloads:
//	  - url: https://www.youtube.com/watch?v=...
//	    audio: true
//	    quality: 720p
type batchManifest struct {
	Downloads []batchEntry `yaml:"downloads"`
}

type batchEntry struct {
	URL     string `yaml:"url"`
	Audio   bool   `yaml:"audio"`
	Quality string `yaml:"quality"`
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Download videos listed in a YAML manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var manifest batchManifest
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid manifest: %v\n", err)
			os.Exit(1)
		}
		if len(manifest.Downloads) == 0 {
			fmt.Fprintln(os.Stderr, "Error: manifest lists no downloads")
			os.Exit(1)
		}

		ensureServer()
		runManifest(manifest)
	},
}

func runManifest(manifest batchManifest) {
	stop, streaming := followProgress()
	defer stop()

	total := len(manifest.Downloads)
	succeeded, failed, skipped := 0, 0, 0

	for i, entry := range manifest.Downloads {
		if entry.URL == "" {
			printWarning(fmt.Sprintf("Skipping entry %d: missing url", i+1))
			skipped++
			continue
		}
		switch entry.Quality {
		case "", "best", "720p", "480p":
		default:
			printWarning(fmt.Sprintf("Skipping entry %d: invalid quality %q", i+1, entry.Quality))
			skipped++
			continue
		}

		printInfo(fmt.Sprintf("Processing %d/%d: %s", i+1, total, entry.URL))
		result, err := postDownload(entry)
		if err != nil {
			printError(err.Error())
			failed++
			continue
		}

		if !streaming {
			for _, m := range result.Messages {
				printDetail(m)
			}
		}
		for _, e := range result.Errors {
			printError(e)
		}
		if result.Success {
			succeeded++
		} else {
			failed++
		}
	}

	summary := fmt.Sprintf("Batch complete. Successful: %d | Failed: %d", succeeded, failed)
	if skipped > 0 {
		summary += fmt.Sprintf(" | Skipped: %d", skipped)
	}
	if failed > 0 || skipped > 0 {
		printWarning(summary)
	} else {
		printSuccess(summary)
	}
	if succeeded == 0 && failed > 0 {
		os.Exit(1)
	}
}

// postDownload submits one manifest entry, returning the outcome rather
// than exiting so the rest of the manifest still runs after a failure.
func postDownload(entry batchEntry) (downloadOutcome, error) {
	payload := map[string]interface{}{
		"url":        entry.URL,
		"audio_only": entry.Audio,
	}
	if entry.Quality != "" {
		payload["quality"] = entry.Quality
	}
	data, _ := json.Marshal(payload)

	resp, err := http.Post(serverURL+"/api/v1/downloads", "application/json", bytes.NewReader(data))
	if err != nil {
		return downloadOutcome{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return downloadOutcome{}, fmt.Errorf("%s", strings.TrimSpace(string(body)))
	}

	var result downloadOutcome
	json.Unmarshal(body, &result)
	return result, nil
}
