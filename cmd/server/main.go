package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/api"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"github.com/yourusername/yt-grab-go/pkg/logger"
)

var (
	serverMode = flag.Bool("server-mode", false, "Internal flag: run in server mode (called by daemon)")
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// If not in server mode, run as daemon
	if !*serverMode {
		startAsDaemon()
		return
	}

	// Run as server (called by daemon)
	runServer()
}

// startAsDaemon forks the current process and runs the server in background
func startAsDaemon() {
	// Get the executable path
	execPath, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get executable path: %v\n", err)
		os.Exit(1)
	}

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}

	// Fork the process
	args := []string{"-server-mode"}
	if *configPath != "" {
		args = append(args, "-config", *configPath)
	}
	cmd := exec.Command(execPath, args...)
	cmd.Dir = cwd
	cmd.Env = os.Environ()

	// Detach from parent process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true, // Create new session
	}

	// Redirect output to /dev/null
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open /dev/null: %v\n", err)
		os.Exit(1)
	}
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull

	// Start the child process
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start daemon: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Server started as daemon (PID: %d)\n", cmd.Process.Pid)
	os.Exit(0)
}

func runServer() {
	// Load configuration
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Create required directories before anything opens files in them
	if err := createDirectories(config); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Process-level logger (console by default)
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Per-category file logger (download, http, error)
	multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
		Level:   config.Logging.Level,
		LogsDir: config.Download.LogsDir,
	})
	if err != nil {
		log.Fatal("Failed to initialize category logger", zap.Error(err))
	}
	defer multiLog.Close()

	logAdapter := logger.NewLoggerAdapter(multiLog)

	log.Info("Starting yt-grab server",
		zap.String("version", "1.0.0"),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("output_dir", config.Download.OutputDir),
		zap.String("history_file", config.History.FilePath))

	// Infrastructure
	extractor := infrastructure.NewYTDLPExtractor(&config.Download, multiLog)
	historyStore := infrastructure.NewJSONHistoryStore(config.History.FilePath)
	fileMgr := infrastructure.NewFileManager(config.Download.OutputDir)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	if count, size, err := fileMgr.TotalSize(); err == nil {
		log.Info("Downloads directory ready",
			zap.String("dir", fileMgr.Dir()),
			zap.Int("files", count),
			zap.Int64("total_bytes", size))
	}

	// Application services
	downloadMgr := app.NewDownloadManager(extractor, historyStore, notifier,
		&config.Download, &config.Search, multiLog.Download())
	sessionMgr := app.NewSessionManager(logAdapter.HTTP())

	// Setup HTTP router
	router := api.SetupRouter(downloadMgr, sessionMgr, historyStore, fileMgr,
		logAdapter, config.Download.LogsDir, config.Download.YTDLPBinary)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func createDirectories(config *domain.Config) error {
	dirs := []string{
		config.Download.OutputDir,
		config.Download.LogsDir,
		filepath.Dir(config.History.FilePath),
	}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
