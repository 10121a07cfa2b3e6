package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/config"
	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

func TestDeliverPostsReport(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(config.WebhookConfig{URL: srv.URL}, func(r models.DailyReport) string { return "digest " + r.Date })
	err := client.Deliver(context.Background(), models.DailyReport{Date: "2024-03-15", Produced: 42})
	require.NoError(t, err)

	assert.Equal(t, "digest 2024-03-15", got.Text)
	assert.Equal(t, 42.0, got.Report.Produced)
}

func TestDeliverFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(config.WebhookConfig{URL: srv.URL}, nil).Deliver(context.Background(), models.DailyReport{})
	assert.ErrorContains(t, err, "status=502")
}
