package sheets

import (
	"context"
	"time"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// ReportSheet records one spreadsheet row per daily report.
type ReportSheet struct {
	writer RowWriter
}

// NewReportSheet wraps a row writer as a report sink.
func NewReportSheet(writer RowWriter) *ReportSheet {
	return &ReportSheet{writer: writer}
}

// Name implements reporting.Sink.
func (s *ReportSheet) Name() string { return "sheets" }

// Deliver appends date, entries, received, produced, wasted, waste %,
// forecast and creation time.
func (s *ReportSheet) Deliver(ctx context.Context, report models.DailyReport) error {
	return s.writer.AppendRow(ctx, []interface{}{
		report.Date,
		report.Entries,
		report.Received,
		report.Produced,
		report.Wasted,
		report.WastePercent,
		report.Forecast,
		report.CreatedAt.Format(time.RFC3339),
	})
}
