package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/metrics"
	"github.com/mamadbah2/prodtracker/internal/service/aggregation"
)

// EventDailyReport is the live-update event carrying a generated report.
const EventDailyReport = "daily-report"

// EntryStats is the read side of the entry repository used by reports.
type EntryStats interface {
	Totals(ctx context.Context, start, end time.Time) (models.Totals, error)
	Count(ctx context.Context, start, end time.Time) (int64, error)
}

// Forecaster predicts the next day's produced quantity.
type Forecaster interface {
	Predict(ctx context.Context) (models.Forecast, error)
}

// Sink receives generated daily reports.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, report models.DailyReport) error
}

// Service builds the end-of-day digest and hands it to the configured sinks.
type Service struct {
	stats      EntryStats
	forecaster Forecaster
	sinks      []Sink
	loc        *time.Location
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(stats EntryStats, forecaster Forecaster, sinks []Sink, loc *time.Location, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		stats:      stats,
		forecaster: forecaster,
		sinks:      sinks,
		loc:        loc,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// BuildDailyReport aggregates the calendar day containing day. A failed
// forecast leaves the forecast at zero rather than failing the report.
func (s *Service) BuildDailyReport(ctx context.Context, day time.Time) (models.DailyReport, error) {
	start, end := aggregation.DayBounds(day, s.loc)

	totals, err := s.stats.Totals(ctx, start, end)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("load daily totals: %w", err)
	}
	count, err := s.stats.Count(ctx, start, end)
	if err != nil {
		return models.DailyReport{}, fmt.Errorf("count daily entries: %w", err)
	}

	report := models.DailyReport{
		Date:         start.Format(aggregation.DateLayout),
		Entries:      count,
		Received:     totals.Received,
		Produced:     totals.Produced,
		Wasted:       totals.Wasted,
		WastePercent: WastePercent(totals.Produced, totals.Wasted),
		CreatedAt:    s.now().UTC(),
	}

	if s.forecaster != nil {
		forecast, err := s.forecaster.Predict(ctx)
		if err != nil {
			s.logger.Warn("forecast unavailable for daily report", zap.Error(err))
		} else {
			report.Forecast = forecast.PredictedQty
		}
	}

	return report, nil
}

// Run builds today's report and delivers it to every sink. Sink failures are
// logged and counted; they do not stop delivery to the remaining sinks.
func (s *Service) Run(ctx context.Context) (models.DailyReport, error) {
	report, err := s.BuildDailyReport(ctx, s.now())
	if err != nil {
		return models.DailyReport{}, err
	}

	for _, sink := range s.sinks {
		err := sink.Deliver(ctx, report)
		s.metrics.ReportDelivered(sink.Name(), err)
		if err != nil {
			s.logger.Error("daily report delivery failed", zap.String("sink", sink.Name()), zap.Error(err))
			continue
		}
		s.logger.Info("daily report delivered", zap.String("sink", sink.Name()), zap.String("date", report.Date))
	}

	return report, nil
}

// FormatReport renders a one-paragraph text digest of report.
func FormatReport(report models.DailyReport) string {
	if report.Entries == 0 {
		return fmt.Sprintf("Production (%s): no entries logged. Forecast for tomorrow: %d units.", report.Date, report.Forecast)
	}
	return fmt.Sprintf(
		"Production (%s): %s units produced from %s received across %d entries. Waste %s units (%.2f%%). Forecast for tomorrow: %d units.",
		report.Date,
		formatQty(report.Produced),
		formatQty(report.Received),
		report.Entries,
		formatQty(report.Wasted),
		report.WastePercent,
		report.Forecast,
	)
}

// WastePercent is wasted / (produced + wasted) * 100 rounded to two decimals,
// 0 when both are zero.
func WastePercent(produced, wasted float64) float64 {
	total := produced + wasted
	if total == 0 {
		return 0
	}
	rate := (wasted / total) * 100
	return math.Round(rate*100) / 100
}

func formatQty(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Broadcaster pushes an event to live sessions.
type Broadcaster interface {
	Publish(event string, data []byte)
}

// LiveSink publishes reports to connected dashboards.
type LiveSink struct {
	broadcaster Broadcaster
}

// NewLiveSink wraps a broadcaster as a report sink.
func NewLiveSink(b Broadcaster) *LiveSink {
	return &LiveSink{broadcaster: b}
}

// Name implements Sink.
func (s *LiveSink) Name() string { return "live" }

// Deliver implements Sink.
func (s *LiveSink) Deliver(_ context.Context, report models.DailyReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode daily report: %w", err)
	}
	s.broadcaster.Publish(EventDailyReport, data)
	return nil
}
