package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// ReportRunner builds and delivers the daily report.
type ReportRunner interface {
	Run(ctx context.Context) (models.DailyReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	runner   ReportRunner
	timeout  time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. The schedule is a standard
// five field cron expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, runner ReportRunner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		runner:   runner,
		timeout:  2 * time.Minute,
		logger:   logger,
	}
}

// Start registers the daily report job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) sendDailyReport() {
	s.logger.Info("generating daily report")
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("daily report delivered with errors", zap.String("date", report.Date), zap.Error(err))
		return
	}
	s.logger.Info("daily report sent successfully", zap.String("date", report.Date))
}
