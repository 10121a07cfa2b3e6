package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/prodtracker/internal/config"
	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// Client posts daily reports to an HTTP endpoint.
type Client struct {
	httpClient *resty.Client
	url        string
	render     func(models.DailyReport) string
}

// NewClient builds a resty-backed webhook client. render produces the human
// readable text sent alongside the report.
func NewClient(cfg config.WebhookConfig, render func(models.DailyReport) string) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient, url: cfg.URL, render: render}
}

// payload is the JSON body posted to the webhook.
type payload struct {
	Text   string             `json:"text"`
	Report models.DailyReport `json:"report"`
}

// Name implements reporting.Sink.
func (c *Client) Name() string { return "webhook" }

// Deliver posts the report and fails on any non-2xx response.
func (c *Client) Deliver(ctx context.Context, report models.DailyReport) error {
	body := payload{Report: report}
	if c.render != nil {
		body.Text = c.render(report)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post daily report: %w", err)
	}

	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
