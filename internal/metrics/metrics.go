// Package metrics provides the Prometheus collectors of the tracker.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded by EntrySubmitted.
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultFailed   = "failed"
)

// Metrics groups the application collectors. A nil *Metrics is valid and
// records nothing, which keeps tests free of registry plumbing.
type Metrics struct {
	EntriesSubmitted *prometheus.CounterVec
	EventsBroadcast  *prometheus.CounterVec
	EventsDropped    prometheus.Counter
	LiveClients      prometheus.Gauge
	QueryErrors      *prometheus.CounterVec
	ReportsDelivered *prometheus.CounterVec
}

// New creates the collectors and registers them with registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		EntriesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodtracker_entries_submitted_total",
			Help: "Production entry submissions by outcome",
		}, []string{"result"}),
		EventsBroadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodtracker_events_broadcast_total",
			Help: "Live-update events published to connected clients",
		}, []string{"event"}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prodtracker_events_dropped_total",
			Help: "Live-update events skipped because a client buffer was full",
		}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prodtracker_live_clients",
			Help: "Currently connected live-update clients",
		}),
		QueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodtracker_query_errors_total",
			Help: "Failed summary, comparison and forecast reads by endpoint",
		}, []string{"endpoint"}),
		ReportsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prodtracker_reports_delivered_total",
			Help: "Daily report deliveries by sink and outcome",
		}, []string{"sink", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.EntriesSubmitted, m.EventsBroadcast, m.EventsDropped,
		m.LiveClients, m.QueryErrors, m.ReportsDelivered,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return m, nil
}

// EntrySubmitted counts one submission outcome.
func (m *Metrics) EntrySubmitted(result string) {
	if m == nil {
		return
	}
	m.EntriesSubmitted.WithLabelValues(result).Inc()
}

// EventBroadcast counts one published event.
func (m *Metrics) EventBroadcast(event string) {
	if m == nil {
		return
	}
	m.EventsBroadcast.WithLabelValues(event).Inc()
}

// EventDropped counts one event skipped for a slow client.
func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.EventsDropped.Inc()
}

// SetLiveClients records the number of connected clients.
func (m *Metrics) SetLiveClients(n int) {
	if m == nil {
		return
	}
	m.LiveClients.Set(float64(n))
}

// QueryFailed counts one failed read for endpoint.
func (m *Metrics) QueryFailed(endpoint string) {
	if m == nil {
		return
	}
	m.QueryErrors.WithLabelValues(endpoint).Inc()
}

// ReportDelivered counts one daily report delivery attempt.
func (m *Metrics) ReportDelivered(sink string, err error) {
	if m == nil {
		return
	}
	result := ResultAccepted
	if err != nil {
		result = ResultFailed
	}
	m.ReportsDelivered.WithLabelValues(sink, result).Inc()
}
