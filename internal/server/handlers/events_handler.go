package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/server/middleware"
	"github.com/mamadbah2/prodtracker/internal/sse"
)

// EventsHandler streams live updates over Server-Sent Events.
type EventsHandler struct {
	hub       *sse.Hub
	heartbeat time.Duration
	logger    *zap.Logger
}

// NewEventsHandler constructs the SSE stream handler.
func NewEventsHandler(hub *sse.Hub, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{hub: hub, heartbeat: 30 * time.Second, logger: logger}
}

// Stream handles GET /api/events.
func (h *EventsHandler) Stream(c *gin.Context) {
	clientID := uuid.New().String()
	client := h.hub.Register(clientID, middleware.Username(c))
	defer h.hub.Unregister(clientID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	writeEvent(c.Writer, "connected", []byte(fmt.Sprintf(`{"clientId":%q}`, clientID)))
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			h.logger.Debug("live client disconnected", zap.String("client_id", clientID))
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			writeEvent(c.Writer, event.Name, event.Data)
			c.Writer.Flush()
		case <-heartbeat.C:
			_, _ = io.WriteString(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}

// writeEvent frames one event, splitting multi-line data across data fields.
func writeEvent(w io.Writer, name string, data []byte) {
	var buf bytes.Buffer
	buf.WriteString("event: ")
	buf.WriteString(name)
	buf.WriteByte('\n')
	for _, line := range bytes.Split(bytes.TrimRight(data, "\r\n"), []byte("\n")) {
		buf.WriteString("data: ")
		buf.Write(bytes.TrimRight(line, "\r"))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	_, _ = w.Write(buf.Bytes())
}
