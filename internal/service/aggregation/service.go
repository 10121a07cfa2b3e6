package aggregation

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// EntryStore is the read side of the entry repository used for rollups.
type EntryStore interface {
	Totals(ctx context.Context, start, end time.Time) (models.Totals, error)
	TotalsByOperator(ctx context.Context) ([]models.GroupTotal, error)
	TotalsByMachine(ctx context.Context) ([]models.GroupTotal, error)
}

// Service computes period sums and per-operator / per-machine rollups.
type Service struct {
	store  EntryStore
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an aggregation service evaluating calendar days in loc.
func NewService(store EntryStore, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, logger: logger, now: time.Now}
}

// OrdersOverview returns the received, produced and wasted sums for each of
// Periods. A window whose query fails contributes zeros; the first failure is
// returned alongside the otherwise complete summary.
func (s *Service) OrdersOverview(ctx context.Context) (models.OrdersSummary, error) {
	summary := models.OrdersSummary{
		Received: make([]float64, 0, len(Periods)),
		Produced: make([]float64, 0, len(Periods)),
		Wasted:   make([]float64, 0, len(Periods)),
	}

	now := s.now()
	var firstErr error
	for _, period := range Periods {
		start, end, err := Window(period, now, s.loc)
		if err != nil {
			return summary, err
		}

		totals, err := s.store.Totals(ctx, start, end)
		if err != nil {
			s.logger.Warn("orders window query failed", zap.String("period", string(period)), zap.Error(err))
			totals = models.Totals{}
			if firstErr == nil {
				firstErr = err
			}
		}

		summary.Received = append(summary.Received, totals.Received)
		summary.Produced = append(summary.Produced, totals.Produced)
		summary.Wasted = append(summary.Wasted, totals.Wasted)
	}

	return summary, firstErr
}

// PeriodTotals returns the sums for a single period window.
func (s *Service) PeriodTotals(ctx context.Context, period Period) (models.Totals, error) {
	start, end, err := Window(period, s.now(), s.loc)
	if err != nil {
		return models.Totals{}, err
	}
	totals, err := s.store.Totals(ctx, start, end)
	if err != nil {
		return models.Totals{}, err
	}
	return totals, nil
}

// DateTotals returns the sums for the calendar date containing date.
func (s *Service) DateTotals(ctx context.Context, date time.Time) (models.Totals, error) {
	start, end := DayBounds(date, s.loc)
	totals, err := s.store.Totals(ctx, start, end)
	if err != nil {
		return models.Totals{}, err
	}
	return totals, nil
}

// OperatorPerformance returns produced quantity per operator id.
func (s *Service) OperatorPerformance(ctx context.Context) (models.OperatorSummary, error) {
	summary := models.OperatorSummary{Names: []string{}, Performance: []float64{}}

	groups, err := s.store.TotalsByOperator(ctx)
	if err != nil {
		return summary, err
	}

	for _, group := range groups {
		summary.Names = append(summary.Names, group.Key)
		summary.Performance = append(summary.Performance, group.Produced)
	}
	return summary, nil
}

// MachineEfficiency returns the efficiency percentage per machine id.
func (s *Service) MachineEfficiency(ctx context.Context) (models.MachineSummary, error) {
	summary := models.MachineSummary{Names: []string{}, Efficiency: []int64{}}

	groups, err := s.store.TotalsByMachine(ctx)
	if err != nil {
		return summary, err
	}

	for _, group := range groups {
		summary.Names = append(summary.Names, group.Key)
		summary.Efficiency = append(summary.Efficiency, Efficiency(group.Produced, group.Wasted))
	}
	return summary, nil
}

// Efficiency is produced / (produced + wasted) * 100 rounded half away from
// zero. It is 0 when nothing was produced or wasted.
func Efficiency(produced, wasted float64) int64 {
	total := produced + wasted
	if total == 0 {
		return 0
	}
	return finiteRound(produced * 100 / total)
}

func finiteRound(value float64) int64 {
	rounded := math.Round(value)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		return 0
	}
	return int64(rounded)
}

