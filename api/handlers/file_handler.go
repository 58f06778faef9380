package handlers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/format"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
	"go.uber.org/zap"
)

// FileHandler handles stored-download file requests
type FileHandler struct {
	files  *infrastructure.FileManager
	logger *zap.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(files *infrastructure.FileManager, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		logger: logger,
	}
}

// FileResponse describes one stored file
type FileResponse struct {
	Name          string    `json:"name"`
	Size          int64     `json:"size"`
	SizeFormatted string    `json:"size_formatted"`
	ModifiedAt    time.Time `json:"modified_at"`
}

// FileListResponse represents a directory listing
type FileListResponse struct {
	Count              int            `json:"count"`
	TotalSize          int64          `json:"total_size"`
	TotalSizeFormatted string         `json:"total_size_formatted"`
	Files              []FileResponse `json:"files"`
}

// List handles GET /api/v1/files
func (h *FileHandler) List(c *gin.Context) {
	entries, err := h.files.List()
	if err != nil {
		h.logger.Error("Failed to list files", zap.Error(err))
		respondError(c, err)
		return
	}

	var totalSize int64
	files := make([]FileResponse, 0, len(entries))
	for _, entry := range entries {
		totalSize += entry.Size
		files = append(files, FileResponse{
			Name:          entry.Name,
			Size:          entry.Size,
			SizeFormatted: format.FileSize(entry.Size),
			ModifiedAt:    entry.ModTime,
		})
	}

	c.JSON(http.StatusOK, FileListResponse{
		Count:              len(files),
		TotalSize:          totalSize,
		TotalSizeFormatted: format.FileSize(totalSize),
		Files:              files,
	})
}

// Get handles GET /api/v1/files/:name, serving the file as an attachment
func (h *FileHandler) Get(c *gin.Context) {
	name := c.Param("name")

	path, err := h.files.Resolve(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.FileAttachment(path, name)
}

// Delete handles DELETE /api/v1/files/:name
func (h *FileHandler) Delete(c *gin.Context) {
	name := c.Param("name")

	if err := h.files.Delete(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		h.logger.Error("Failed to delete file", zap.String("name", name), zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("File deleted", zap.String("name", name))
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// ArchiveResponse reports a freshly created archive
type ArchiveResponse struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// CreateArchive handles POST /api/v1/archive. The archive lands in the
// downloads directory and can be fetched through GET /api/v1/files/:name.
func (h *FileHandler) CreateArchive(c *gin.Context) {
	filename, err := h.files.CreateZip()
	if err != nil {
		if errors.Is(err, infrastructure.ErrNoFiles) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no files to archive"})
			return
		}
		h.logger.Error("Failed to create archive", zap.Error(err))
		respondError(c, err)
		return
	}

	h.logger.Info("Archive created", zap.String("filename", filename))
	c.JSON(http.StatusCreated, ArchiveResponse{
		Filename: filename,
		Message:  "archive created",
	})
}
