package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := New(registry)
	require.NoError(t, err)

	m.EntrySubmitted(ResultAccepted)
	m.EntrySubmitted(ResultAccepted)
	m.EntrySubmitted(ResultInvalid)
	m.ReportDelivered("mongodb", errors.New("down"))
	m.SetLiveClients(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntriesSubmitted.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsDelivered.WithLabelValues("mongodb", ResultFailed)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LiveClients))

	_, err = New(registry)
	assert.Error(t, err, "registering twice must fail")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EntrySubmitted(ResultFailed)
		m.EventBroadcast("new-entry")
		m.EventDropped()
		m.SetLiveClients(1)
		m.QueryFailed("orders")
		m.ReportDelivered("webhook", nil)
	})
}
