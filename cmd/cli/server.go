package main

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	serverBinaryName   = "ytgrab-server"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

// isServerRunning checks if the server is responding to health checks
func isServerRunning() bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// findServerBinary locates the ytgrab-server binary
func findServerBinary() (string, error) {
	// 1. Check same directory as CLI binary
	execPath, err := os.Executable()
	if err == nil {
		serverPath := filepath.Join(filepath.Dir(execPath), serverBinaryName)
		if _, err := os.Stat(serverPath); err == nil {
			return serverPath, nil
		}
	}

	// 2. Check PATH
	serverPath, err := exec.LookPath(serverBinaryName)
	if err == nil {
		return serverPath, nil
	}

	// 3. Check common locations
	commonPaths := []string{
		filepath.Join("/usr/local/bin", serverBinaryName),
		filepath.Join("/usr/bin", serverBinaryName),
		filepath.Join(os.Getenv("HOME"), "go/bin", serverBinaryName),
		filepath.Join(os.Getenv("HOME"), ".local/bin", serverBinaryName),
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found", serverBinaryName)
}

// startServerBackground starts the server as a detached background process
func startServerBackground() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(serverPath)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	// Detach from the controlling terminal
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	// Reap the child if it ever exits while the CLI is still running
	go func() {
		cmd.Wait()
	}()

	return nil
}

// waitForServerReady polls the server until it's ready or timeout
func waitForServerReady() error {
	deadline := time.Now().Add(serverStartTimeout)
	for time.Now().Before(deadline) {
		if isServerRunning() {
			return nil
		}
		time.Sleep(serverPollInterval)
	}
	return fmt.Errorf("server did not start within %v", serverStartTimeout)
}

// ensureServerRunning checks if server is running, starts it if not
func ensureServerRunning() error {
	if isServerRunning() {
		return nil
	}

	printInfo("Server not running, starting...")

	if err := startServerBackground(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	if err := waitForServerReady(); err != nil {
		return err
	}

	printSuccess("Server started")
	return nil
}
