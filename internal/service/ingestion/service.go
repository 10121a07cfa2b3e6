// Package ingestion validates, persists and announces production entries.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/metrics"
)

// EventNewEntry is the live-update event carrying an accepted payload.
const EventNewEntry = "new-entry"

// MaxQuantity bounds a single quantity so column sums stay finite.
const MaxQuantity = 1e12

// EntryWriter persists a new entry.
type EntryWriter interface {
	Create(ctx context.Context, entry *models.Entry) error
}

// Broadcaster pushes an event to live sessions. Implementations must not block.
type Broadcaster interface {
	Publish(event string, data []byte)
}

// Submission is one entry submission as received.
type Submission struct {
	Payload models.EntryPayload
	// Raw is the request body, broadcast verbatim when present.
	Raw []byte
	// Actor is the authenticated username; it overrides Payload.EnteredBy.
	Actor string
}

// Service is the only write path into the production entries table.
type Service struct {
	store       EntryWriter
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewService wires the ingestion service. broadcaster and m may be nil.
func NewService(store EntryWriter, broadcaster Broadcaster, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:       store,
		broadcaster: broadcaster,
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit validates and stores the submission, then publishes it. Invalid
// payloads return a *models.ValidationError; storage failures wrap
// models.ErrPersistence. Neither case publishes anything.
func (s *Service) Submit(ctx context.Context, sub Submission) (models.Entry, error) {
	if err := Validate(sub.Payload); err != nil {
		s.metrics.EntrySubmitted(metrics.ResultInvalid)
		s.logger.Info("entry rejected", zap.Error(err))
		return models.Entry{}, err
	}

	entry := buildEntry(sub)
	entry.EntryDate = s.stamp()

	if err := s.store.Create(ctx, &entry); err != nil {
		s.metrics.EntrySubmitted(metrics.ResultFailed)
		s.logger.Error("failed to persist entry", zap.String("order_no", entry.OrderNo), zap.Error(err))
		return models.Entry{}, err
	}
	s.metrics.EntrySubmitted(metrics.ResultAccepted)

	s.publish(sub)

	s.logger.Info("entry accepted",
		zap.Uint("id", entry.ID),
		zap.String("order_no", entry.OrderNo),
		zap.String("operator_id", entry.OperatorID),
		zap.String("machine_id", entry.MachineID),
		zap.String("entered_by", entry.EnteredBy))
	return entry, nil
}

// Validate checks required identifiers, quantities and status.
func Validate(p models.EntryPayload) error {
	var missing []string
	if strings.TrimSpace(p.OrderNo) == "" {
		missing = append(missing, "orderNo")
	}
	if strings.TrimSpace(p.OperatorID) == "" {
		missing = append(missing, "operatorId")
	}
	if strings.TrimSpace(p.MachineID) == "" {
		missing = append(missing, "machineId")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Fields: missing}
	}

	quantities := []struct {
		field string
		value *float64
	}{
		{"materialPicked", p.MaterialPicked},
		{"producedQty", p.ProducedQty},
		{"wastedQty", p.WastedQty},
	}
	for _, q := range quantities {
		v := models.Quantity(q.value)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return &models.ValidationError{
				Fields: []string{q.field},
				Reason: fmt.Sprintf("%s must be a finite number", q.field),
			}
		case v < 0:
			return &models.ValidationError{
				Fields: []string{q.field},
				Reason: fmt.Sprintf("%s must not be negative", q.field),
			}
		case v > MaxQuantity:
			return &models.ValidationError{
				Fields: []string{q.field},
				Reason: fmt.Sprintf("%s must not exceed %g", q.field, MaxQuantity),
			}
		}
	}

	if _, ok := models.ParseEntryStatus(p.Status); !ok {
		return &models.ValidationError{
			Fields: []string{"status"},
			Reason: fmt.Sprintf("status %q is not one of pending, in_progress, completed, on_hold", p.Status),
		}
	}

	return nil
}

func buildEntry(sub Submission) models.Entry {
	p := sub.Payload
	status, _ := models.ParseEntryStatus(p.Status)

	enteredBy := strings.TrimSpace(sub.Actor)
	if enteredBy == "" {
		enteredBy = strings.TrimSpace(p.EnteredBy)
	}

	return models.Entry{
		OrderNo:        strings.TrimSpace(p.OrderNo),
		ItemName:       strings.TrimSpace(p.ItemName),
		OperatorID:     strings.TrimSpace(p.OperatorID),
		MachineID:      strings.TrimSpace(p.MachineID),
		MaterialPicked: models.Quantity(p.MaterialPicked),
		ProducedQty:    models.Quantity(p.ProducedQty),
		WastedQty:      models.Quantity(p.WastedQty),
		WastageReason:  strings.TrimSpace(p.WastageReason),
		Status:         status,
		EnteredBy:      enteredBy,
	}
}

// stamp returns a UTC timestamp strictly after every previously issued one.
func (s *Service) stamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Service) publish(sub Submission) {
	if s.broadcaster == nil {
		return
	}

	data := sub.Raw
	if len(data) == 0 {
		encoded, err := json.Marshal(sub.Payload)
		if err != nil {
			s.logger.Warn("failed to encode entry for broadcast", zap.Error(err))
			return
		}
		data = encoded
	}

	s.broadcaster.Publish(EventNewEntry, data)
}
