package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

type countingRunner struct {
	calls int
	err   error
}

func (r *countingRunner) Run(context.Context) (models.DailyReport, error) {
	r.calls++
	return models.DailyReport{Date: "2024-03-15"}, r.err
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler("not a cron", time.UTC, &countingRunner{}, nil)
	assert.Error(t, s.Start())
}

func TestStartRegistersDailyJob(t *testing.T) {
	s := NewScheduler("0 20 * * *", time.UTC, &countingRunner{}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Equal(t, 1, s.Entries())
}

func TestSendDailyReportInvokesRunner(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler("0 20 * * *", time.UTC, runner, nil)

	s.sendDailyReport()
	runner.err = errors.New("sink down")
	s.sendDailyReport()

	assert.Equal(t, 2, runner.calls)
}
