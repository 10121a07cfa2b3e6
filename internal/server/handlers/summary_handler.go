package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/metrics"
	"github.com/mamadbah2/prodtracker/internal/service/aggregation"
	"github.com/mamadbah2/prodtracker/internal/service/comparison"
	"github.com/mamadbah2/prodtracker/internal/service/forecast"
)

const queryFailedMessage = "Failed to load data"

// SummaryHandler serves the dashboard read endpoints.
type SummaryHandler struct {
	aggregation *aggregation.Service
	comparison  *comparison.Service
	forecast    *forecast.Service
	loc         *time.Location
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewSummaryHandler constructs the read handlers. m may be nil.
func NewSummaryHandler(agg *aggregation.Service, cmp *comparison.Service, fc *forecast.Service, loc *time.Location, m *metrics.Metrics, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SummaryHandler{
		aggregation: agg,
		comparison:  cmp,
		forecast:    fc,
		loc:         loc,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Orders handles GET /api/summary/orders.
func (h *SummaryHandler) Orders(c *gin.Context) {
	summary, err := h.aggregation.OrdersOverview(c.Request.Context())
	if err != nil {
		h.queryFailed("orders", err)
		summary.Error = queryFailedMessage
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Operators handles GET /api/summary/operators.
func (h *SummaryHandler) Operators(c *gin.Context) {
	summary, err := h.aggregation.OperatorPerformance(c.Request.Context())
	if err != nil {
		h.queryFailed("operators", err)
		summary.Error = queryFailedMessage
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Machines handles GET /api/summary/machines.
func (h *SummaryHandler) Machines(c *gin.Context) {
	summary, err := h.aggregation.MachineEfficiency(c.Request.Context())
	if err != nil {
		h.queryFailed("machines", err)
		summary.Error = queryFailedMessage
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Date handles GET /api/summary/date?date=YYYY-MM-DD. A missing date means today.
func (h *SummaryHandler) Date(c *gin.Context) {
	date, err := h.dateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.DateSummary{Date: c.Query("date"), Error: err.Error()})
		return
	}

	summary := models.DateSummary{Date: date.Format(aggregation.DateLayout)}
	totals, err := h.aggregation.DateTotals(c.Request.Context(), date)
	if err != nil {
		h.queryFailed("date", err)
		summary.Error = queryFailedMessage
		c.JSON(http.StatusInternalServerError, summary)
		return
	}

	summary.Totals = totals
	c.JSON(http.StatusOK, summary)
}

// Compare handles GET /api/compare?date=YYYY-MM-DD. A missing date means today.
func (h *SummaryHandler) Compare(c *gin.Context) {
	date, err := h.dateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Comparison{Date: c.Query("date"), Error: err.Error()})
		return
	}

	result, err := h.comparison.Compare(c.Request.Context(), date)
	if err != nil {
		h.queryFailed("compare", err)
		c.JSON(http.StatusInternalServerError, models.Comparison{Date: result.Date, Error: queryFailedMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Predict handles GET /api/predict/production.
func (h *SummaryHandler) Predict(c *gin.Context) {
	result, err := h.forecast.Predict(c.Request.Context())
	if err != nil {
		h.queryFailed("predict", err)
		c.JSON(http.StatusInternalServerError, models.Forecast{Error: queryFailedMessage})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SummaryHandler) dateParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return h.now().In(h.loc), nil
	}
	return aggregation.ParseDate(raw, h.loc)
}

func (h *SummaryHandler) queryFailed(endpoint string, err error) {
	h.metrics.QueryFailed(endpoint)
	h.logger.Error("summary query failed", zap.String("endpoint", endpoint), zap.Error(err))
}
