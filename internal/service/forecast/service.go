// Package forecast predicts next-day output from the daily produced series.
package forecast

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// SeriesReader loads every entry's produced quantity in timestamp order.
type SeriesReader interface {
	ProducedSeries(ctx context.Context) ([]models.TimedQuantity, error)
}

// Service fits a trend line over the stored history.
type Service struct {
	store  SeriesReader
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a forecast service grouping entries by calendar day in loc.
func NewService(store SeriesReader, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger}
}

// Predict returns the forecast for the day after the last observed date. A
// failed read yields a zero prediction together with the error.
func (s *Service) Predict(ctx context.Context) (models.Forecast, error) {
	series, err := s.store.ProducedSeries(ctx)
	if err != nil {
		return models.Forecast{}, err
	}

	totals := DailyTotals(series, s.loc)
	predicted := PredictNext(totals)

	s.logger.Debug("forecast computed", zap.Int("days", len(totals)), zap.Int64("predicted", predicted))
	return models.Forecast{PredictedQty: predicted}, nil
}

// DailyTotals sums produced quantities per distinct calendar date in loc. The
// input must be ordered by timestamp; the output is ordered by date.
func DailyTotals(series []models.TimedQuantity, loc *time.Location) []float64 {
	if loc == nil {
		loc = time.UTC
	}

	totals := make([]float64, 0)
	var lastDay string
	for _, item := range series {
		day := item.EntryDate.In(loc).Format("2006-01-02")
		if len(totals) == 0 || day != lastDay {
			totals = append(totals, 0)
			lastDay = day
		}
		totals[len(totals)-1] += item.ProducedQty
	}
	return totals
}
