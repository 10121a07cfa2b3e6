package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/service/catalog"
)

// CatalogHandler serves the reference lists used by the entry form.
type CatalogHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewCatalogHandler constructs the catalog handler.
func NewCatalogHandler(svc *catalog.Service, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{svc: svc, logger: logger}
}

// Serve returns a handler for GET /api/<name>.
func (h *CatalogHandler) Serve(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.svc.Load(name)
		if err != nil {
			h.logger.Error("failed loading catalog", zap.String("name", name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load " + name})
			return
		}
		if records == nil {
			records = []map[string]string{}
		}
		c.JSON(http.StatusOK, records)
	}
}
