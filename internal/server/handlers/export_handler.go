package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/server/middleware"
	"github.com/mamadbah2/prodtracker/internal/service/csvio"
)

// UserEntryLister returns the entries submitted by one user.
type UserEntryLister interface {
	ListByEnteredBy(ctx context.Context, username string) ([]models.Entry, error)
}

// ExportHandler serves raw entry downloads.
type ExportHandler struct {
	exporter *csvio.Exporter
	entries  UserEntryLister
	logger   *zap.Logger
}

// NewExportHandler constructs the export handlers.
func NewExportHandler(exporter *csvio.Exporter, entries UserEntryLister, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{exporter: exporter, entries: entries, logger: logger}
}

// Export handles GET /api/export. The body is buffered so a failed read never
// produces a truncated attachment.
func (h *ExportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.Export(c.Request.Context(), &buf); err != nil {
		h.logger.Error("failed exporting entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export entries"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvio.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// MyEntries handles GET /api/my-entries.
func (h *ExportHandler) MyEntries(c *gin.Context) {
	username := middleware.Username(c)
	entries, err := h.entries.ListByEnteredBy(c.Request.Context(), username)
	if err != nil {
		h.logger.Error("failed listing user entries", zap.String("user", username), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
