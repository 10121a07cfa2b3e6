package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/server/middleware"
	"github.com/mamadbah2/prodtracker/internal/service/ingestion"
)

const maxEntryBody = 1 << 20

// EntryHandler accepts production entries from the entry form.
type EntryHandler struct {
	svc    *ingestion.Service
	logger *zap.Logger
}

// NewEntryHandler constructs the entry submission handler.
func NewEntryHandler(svc *ingestion.Service, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{svc: svc, logger: logger}
}

// Submit handles POST /api/entry.
func (h *EntryHandler) Submit(c *gin.Context) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxEntryBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.EntryAck{Success: false, Message: "unable to read request body"})
		return
	}

	var payload models.EntryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("invalid entry payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, models.EntryAck{Success: false, Message: "invalid payload"})
		return
	}

	entry, err := h.svc.Submit(c.Request.Context(), ingestion.Submission{
		Payload: payload,
		Raw:     raw,
		Actor:   middleware.Username(c),
	})

	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.EntryAck{
			Success: false,
			Message: validationErr.Error(),
			Fields:  validationErr.Fields,
		})
		return
	case err != nil:
		h.logger.Error("failed saving entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.EntryAck{Success: false, Message: "Failed to save entry"})
		return
	}

	c.JSON(http.StatusOK, models.EntryAck{Success: true, Message: "Entry saved successfully", ID: entry.ID})
}
