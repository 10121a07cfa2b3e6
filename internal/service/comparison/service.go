// Package comparison computes day-over-day received and dispatched deltas.
package comparison

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/service/aggregation"
)

// TotalsReader sums entry quantities over a time range.
type TotalsReader interface {
	Totals(ctx context.Context, start, end time.Time) (models.Totals, error)
}

// Service compares a calendar date against the preceding one.
type Service struct {
	store  TotalsReader
	loc    *time.Location
	logger *zap.Logger
}

// NewService wires a comparison service evaluating calendar days in loc.
func NewService(store TotalsReader, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger}
}

// Compare returns received (material picked) and dispatched (produced) sums
// for the date containing target and for the day before, with percentage
// changes. A failed read leaves the affected day at zero and is returned.
func (s *Service) Compare(ctx context.Context, target time.Time) (models.Comparison, error) {
	start, end := aggregation.DayBounds(target, s.loc)
	prevStart := start.AddDate(0, 0, -1)

	result := models.Comparison{Date: start.Format(aggregation.DateLayout)}

	current, err := s.store.Totals(ctx, start, end)
	if err != nil {
		s.logger.Warn("comparison current day query failed", zap.String("date", result.Date), zap.Error(err))
		return result, err
	}
	previous, err := s.store.Totals(ctx, prevStart, start)
	if err != nil {
		s.logger.Warn("comparison previous day query failed", zap.String("date", result.Date), zap.Error(err))
		return result, err
	}

	result.ReceivedQty = current.Received
	result.DispatchedQty = current.Produced
	result.PreviousReceived = previous.Received
	result.PreviousDispatched = previous.Produced
	result.ReceivedChange = PercentChange(current.Received, previous.Received)
	result.DispatchedChange = PercentChange(current.Produced, previous.Produced)

	return result, nil
}

// PercentChange is (current - previous) / previous * 100 rounded to two
// decimals half away from zero. When previous is zero the change is reported
// as 0.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	change := (current - previous) / previous * 100
	change = math.Round(change*100) / 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0
	}
	return change
}
