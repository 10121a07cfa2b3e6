package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/prodtracker/internal/config"
)

// RowWriter appends one row to the report range of a spreadsheet.
type RowWriter interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// Client appends daily report rows through the Google Sheets API.
type Client struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	reportRange   string
	logger        *zap.Logger
}

// NewClient authenticates with the service account credentials file and
// targets cfg.ReportRange of cfg.SpreadsheetID.
func NewClient(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ReportRange == "" {
		return nil, errors.New("GOOGLE_SHEET_REPORT_RANGE must not be empty")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Client{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		reportRange:   cfg.ReportRange,
		logger:        logger,
	}, nil
}

// AppendRow inserts values as a new row below the existing report rows.
func (c *Client) AppendRow(ctx context.Context, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	_, err := c.values.Append(c.spreadsheetID, c.reportRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append report row to %s: %w", c.reportRange, err)
	}

	c.logger.Debug("report row appended", zap.String("range", c.reportRange), zap.Int("cells", len(values)))
	return nil
}
