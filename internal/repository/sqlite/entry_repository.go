package sqlite

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

const entriesTable = "production_data"

// EntryRepository reads and appends production entries.
type EntryRepository struct {
	db *gorm.DB
}

// NewEntryRepository wraps an open database handle.
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts the entry and fills in its ID.
func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("%w: insert entry: %w", models.ErrPersistence, err)
	}
	return nil
}

// Totals sums material picked, produced and wasted quantities for entries
// dated within [start, end).
func (r *EntryRepository) Totals(ctx context.Context, start, end time.Time) (models.Totals, error) {
	var totals models.Totals
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(material_picked), 0) AS received,
			COALESCE(SUM(produced_qty), 0) AS produced,
			COALESCE(SUM(wasted_qty), 0) AS wasted
		FROM production_data
		WHERE entry_date >= ? AND entry_date < ?`, start.UTC(), end.UTC()).
		Scan(&totals).Error
	if err != nil {
		return models.Totals{}, fmt.Errorf("%w: sum entries: %w", models.ErrQuery, err)
	}
	return totals, nil
}

// Count returns the number of entries dated within [start, end).
func (r *EntryRepository) Count(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(entriesTable).
		Where("entry_date >= ? AND entry_date < ?", start.UTC(), end.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count entries: %w", models.ErrQuery, err)
	}
	return count, nil
}

// TotalsByOperator returns produced and wasted sums per operator id.
func (r *EntryRepository) TotalsByOperator(ctx context.Context) ([]models.GroupTotal, error) {
	return r.groupTotals(ctx, "operator_id")
}

// TotalsByMachine returns produced and wasted sums per machine id.
func (r *EntryRepository) TotalsByMachine(ctx context.Context) ([]models.GroupTotal, error) {
	return r.groupTotals(ctx, "machine_id")
}

func (r *EntryRepository) groupTotals(ctx context.Context, column string) ([]models.GroupTotal, error) {
	groups := make([]models.GroupTotal, 0)
	err := r.db.WithContext(ctx).Table(entriesTable).
		Select(fmt.Sprintf(
			"COALESCE(%[1]s, '') AS group_key, COALESCE(SUM(produced_qty), 0) AS produced, COALESCE(SUM(wasted_qty), 0) AS wasted",
			column)).
		Group(fmt.Sprintf("COALESCE(%s, '')", column)).
		Order("group_key").
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("%w: group entries by %s: %w", models.ErrQuery, column, err)
	}
	return groups, nil
}

// ProducedSeries returns every entry's timestamp and produced quantity in
// timestamp order.
func (r *EntryRepository) ProducedSeries(ctx context.Context) ([]models.TimedQuantity, error) {
	series := make([]models.TimedQuantity, 0)
	err := r.db.WithContext(ctx).Table(entriesTable).
		Select("entry_date, produced_qty").
		Order("entry_date ASC").
		Scan(&series).Error
	if err != nil {
		return nil, fmt.Errorf("%w: load produced series: %w", models.ErrQuery, err)
	}
	return series, nil
}

// List returns all entries in insertion order.
func (r *EntryRepository) List(ctx context.Context) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: list entries: %w", models.ErrQuery, err)
	}
	return entries, nil
}

// ListByEnteredBy returns the entries submitted by one user.
func (r *EntryRepository) ListByEnteredBy(ctx context.Context, username string) ([]models.Entry, error) {
	entries := make([]models.Entry, 0)
	err := r.db.WithContext(ctx).
		Where("entered_by = ?", username).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list entries for %s: %w", models.ErrQuery, username, err)
	}
	return entries, nil
}
