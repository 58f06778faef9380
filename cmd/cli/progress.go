package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

// progressMessage mirrors the server's WebSocket progress payload
type progressMessage struct {
	Type     string  `json:"type"`
	Fraction float64 `json:"fraction"`
	Line     string  `json:"line"`
	Filename string  `json:"filename"`
	Message  string  `json:"message"`
}

type logEntry struct {
	Timestamp string `json:"ts"`
	Level     string `json:"level"`
	Message   string `json:"msg"`
}

// wsURL converts the configured server URL into its WebSocket form
func wsURL(path string) string {
	return strings.Replace(serverURL, "http", "ws", 1) + path
}

// followProgress subscribes to the server's progress feed and renders
// status updates while a download request is in flight. Transfer
// progress lines redraw in place; milestone lines persist. The returned
// stop function tears the subscription down, and ok reports whether the
// feed could be established.
func followProgress() (stop func(), ok bool) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL("/ws/progress"), nil)
	if err != nil {
		return func() {}, false
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg progressMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type != "status" {
				continue
			}
			if strings.HasPrefix(msg.Line, "Downloading:") {
				fmt.Printf("\r\x1b[K%s", detailStyle.Render(msg.Line))
			} else {
				fmt.Printf("\r\x1b[K%s\n", detailStyle.Render(msg.Line))
			}
		}
	}()

	return func() {
		conn.Close()
		<-done
		fmt.Print("\r\x1b[K")
	}, true
}

// followLogs streams log entries over the logs WebSocket until the
// connection drops or the user interrupts.
func followLogs(category string) {
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL("/ws/logs?category="+url.QueryEscape(category)), nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
	defer conn.Close()

	printInfo("Following " + category + " logs (Ctrl-C to stop)")
	for {
		var e logEntry
		if err := conn.ReadJSON(&e); err != nil {
			return
		}
		printLogEntry(e)
	}
}

func printLogEntry(e logEntry) {
	level := fmt.Sprintf("%-5s", strings.ToUpper(e.Level))
	switch e.Level {
	case "error", "fatal", "panic":
		level = errorStyle.Render(level)
	case "warn":
		level = warningStyle.Render(level)
	case "debug":
		level = detailStyle.Render(level)
	}
	fmt.Printf("%s %s %s\n", detailStyle.Render(e.Timestamp), level, e.Message)
}
