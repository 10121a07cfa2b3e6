package handlers

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/sse"
)

func TestWriteEventSplitsLines(t *testing.T) {
	var buf bytes.Buffer
	writeEvent(&buf, "new-entry", []byte("{\n  \"orderNo\": \"A\"\n}\n"))
	assert.Equal(t, "event: new-entry\ndata: {\ndata:   \"orderNo\": \"A\"\ndata: }\n\n", buf.String())
}

// readEvent reads lines up to the blank line ending the next event.
func readEvent(t *testing.T, r *bufio.Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return lines
		}
		lines = append(lines, line)
	}
}

func TestStreamDeliversPublishedEvents(t *testing.T) {
	hub := sse.NewHub(nil, nil)
	r := gin.New()
	r.GET("/api/events", NewEventsHandler(hub, nil).Stream)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	connected := readEvent(t, reader)
	require.Len(t, connected, 2)
	assert.Equal(t, "event: connected", connected[0])
	assert.Equal(t, 1, hub.Len())

	hub.Publish("new-entry", []byte(`{"orderNo":"ORD-1"}`))
	assert.Equal(t, []string{"event: new-entry", `data: {"orderNo":"ORD-1"}`}, readEvent(t, reader))

	cancel()
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
