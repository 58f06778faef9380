//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, httpURL, path string) *websocket.Conn {
	t.Helper()
	wsBase := "ws" + strings.TrimPrefix(httpURL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsBase+path, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWS_ProgressBroadcast(t *testing.T) {
	env := setupTestServer(t)
	conn := dialWS(t, env.server.URL, "/ws/progress")

	// Give the hub a moment to register the subscriber, then run a
	// download on a separate goroutine while this one reads the feed.
	time.Sleep(100 * time.Millisecond)
	go func() {
		payload, _ := json.Marshal(map[string]interface{}{
			"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		})
		resp, err := http.Post(env.server.URL+"/api/v1/downloads", "application/json", bytes.NewReader(payload))
		if err == nil {
			resp.Body.Close()
		}
	}()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var types []string
	var lines []string
	finishedFile := ""
	for finishedFile == "" {
		var msg map[string]interface{}
		require.NoError(t, conn.ReadJSON(&msg))

		msgType, _ := msg["type"].(string)
		types = append(types, msgType)
		switch msgType {
		case "status":
			lines = append(lines, msg["line"].(string))
		case "finished":
			finishedFile, _ = msg["filename"].(string)
		}
	}

	assert.Contains(t, types, "progress")
	assert.Contains(t, types, "status")
	assert.Equal(t, "Test Video.mp4", finishedFile)
	assert.Contains(t, strings.Join(lines, "\n"), "Downloading: 50.0%")
	assert.Contains(t, strings.Join(lines, "\n"), "Download Complete: Test Video.mp4")
}

func TestWS_LogsInitialReplay(t *testing.T) {
	env := setupTestServer(t)

	// A completed download leaves structured entries behind
	postJSON(t, env.server.URL+"/api/v1/downloads", map[string]interface{}{
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, nil)

	conn := dialWS(t, env.server.URL, "/ws/logs?category=download")
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var entry map[string]interface{}
	require.NoError(t, conn.ReadJSON(&entry))

	assert.NotEmpty(t, entry["ts"])
	assert.NotEmpty(t, entry["msg"])
	assert.Equal(t, "info", entry["level"])
}

func TestWS_LogsRejectsUnknownCategory(t *testing.T) {
	env := setupTestServer(t)

	wsBase := "ws" + strings.TrimPrefix(env.server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsBase+"/ws/logs?category=bogus", nil)

	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Nil(t, conn)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
