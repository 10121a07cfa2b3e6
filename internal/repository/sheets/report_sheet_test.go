package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/prodtracker/internal/config"
	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

type fakeWriter struct {
	rows [][]interface{}
	err  error
}

func (f *fakeWriter) AppendRow(_ context.Context, values []interface{}) error {
	f.rows = append(f.rows, values)
	return f.err
}

func TestReportSheetAppendsRow(t *testing.T) {
	repo := &fakeWriter{}
	created := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)

	err := NewReportSheet(repo).Deliver(context.Background(), models.DailyReport{
		Date: "2024-03-15", Entries: 3, Received: 10, Produced: 9, Wasted: 1, WastePercent: 10, Forecast: 11, CreatedAt: created,
	})
	require.NoError(t, err)

	assert.Equal(t, [][]interface{}{{"2024-03-15", int64(3), 10.0, 9.0, 1.0, 10.0, int64(11), "2024-03-15T20:00:00Z"}}, repo.rows)
}

func TestReportSheetPropagatesErrors(t *testing.T) {
	repo := &fakeWriter{err: errors.New("quota exceeded")}
	err := NewReportSheet(repo).Deliver(context.Background(), models.DailyReport{})
	assert.EqualError(t, err, "quota exceeded")
}

func TestNewClientRequiresReportRange(t *testing.T) {
	_, err := NewClient(context.Background(), config.SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "sheet"}, nil)
	assert.ErrorContains(t, err, "GOOGLE_SHEET_REPORT_RANGE")
}
