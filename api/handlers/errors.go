package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/yt-grab-go/internal/domain"
)

// errorStatus maps a domain error to an HTTP status code
func errorStatus(err error) int {
	var extractionErr *domain.ExtractionError
	if errors.As(err, &extractionErr) {
		return http.StatusUnprocessableEntity
	}

	var fsErr *domain.FilesystemError
	if errors.As(err, &fsErr) {
		return http.StatusInternalServerError
	}

	var historyErr *domain.MalformedHistoryError
	if errors.As(err, &historyErr) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// respondError writes a JSON error response with the mapped status code
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}
