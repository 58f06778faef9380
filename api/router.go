package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/yt-grab-go/api/handlers"
	"github.com/yourusername/yt-grab-go/api/middleware"
	"github.com/yourusername/yt-grab-go/internal/app"
	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"github.com/yourusername/yt-grab-go/pkg/logger"
)

// SetupRouter sets up the HTTP router with per-category logging
func SetupRouter(
	downloadMgr *app.DownloadManager,
	sessionMgr *app.SessionManager,
	historyStore domain.HistoryStore,
	fileMgr *infrastructure.FileManager,
	logAdapter *logger.LoggerAdapter,
	logsDir string,
	ytdlpBinary string,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.LoggerWithAdapter(logAdapter))
	router.Use(middleware.RecoveryWithAdapter(logAdapter))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(ytdlpBinary)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Progress broadcasting
	progressHub := handlers.NewProgressHub(logAdapter.Error())

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Metadata and search endpoints
		videoHandler := handlers.NewVideoHandler(downloadMgr, logAdapter.HTTP())
		videos := v1.Group("/videos")
		{
			videos.GET("/info", videoHandler.GetInfo)
			videos.GET("/search", videoHandler.Search)
		}

		// Download endpoints
		downloadHandler := handlers.NewDownloadHandler(downloadMgr, progressHub, logAdapter.Download())
		downloads := v1.Group("/downloads")
		{
			downloads.POST("", downloadHandler.Download)
			downloads.POST("/batch", downloadHandler.DownloadBatch)
		}

		// Session endpoints
		sessionHandler := handlers.NewSessionHandler(sessionMgr, downloadMgr, progressHub, logAdapter.HTTP())
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Create)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.DELETE("/:id", sessionHandler.Delete)
			sessions.POST("/:id/search", sessionHandler.Search)
			sessions.POST("/:id/select", sessionHandler.Select)
			sessions.POST("/:id/deselect", sessionHandler.Deselect)
			sessions.DELETE("/:id/selection", sessionHandler.ClearSelection)
			sessions.POST("/:id/download", sessionHandler.DownloadSelection)
		}

		// History endpoints
		historyHandler := handlers.NewHistoryHandler(historyStore, logAdapter.HTTP())
		history := v1.Group("/history")
		{
			history.GET("", historyHandler.List)
			history.GET("/stats", historyHandler.Stats)
			history.DELETE("", historyHandler.Clear)
		}

		// Stored file endpoints
		fileHandler := handlers.NewFileHandler(fileMgr, logAdapter.HTTP())
		files := v1.Group("/files")
		{
			files.GET("", fileHandler.List)
			files.GET("/:name", fileHandler.Get)
			files.DELETE("/:name", fileHandler.Delete)
		}
		v1.POST("/archive", fileHandler.CreateArchive)

		// Log endpoints
		logHandler := handlers.NewLogHandler(logsDir)
		logs := v1.Group("/logs")
		{
			logs.GET("/categories", logHandler.GetCategories)
			logs.GET("/:category", logHandler.GetLogs)
			logs.GET("/:category/search", logHandler.SearchLogs)
			logs.GET("/:category/export", logHandler.ExportLogs)
		}
	}

	// WebSocket endpoints
	logWS := handlers.NewLogWebSocketHandler(logsDir, logAdapter.Error())
	router.GET("/ws/progress", progressHub.HandleWebSocket)
	router.GET("/ws/logs", logWS.HandleWebSocket)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
