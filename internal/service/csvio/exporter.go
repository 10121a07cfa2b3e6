package csvio

import (
	"context"
	"io"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// ExportFilename is the attachment name used for downloads.
const ExportFilename = "production_data.csv"

// EntryLister returns every stored entry.
type EntryLister interface {
	List(ctx context.Context) ([]models.Entry, error)
}

// Exporter dumps the production entries table.
type Exporter struct {
	store EntryLister
}

// NewExporter wraps an entry store.
func NewExporter(store EntryLister) *Exporter {
	return &Exporter{store: store}
}

// Export writes every entry to w as CSV.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	entries, err := e.store.List(ctx)
	if err != nil {
		return err
	}
	return WriteEntries(w, entries)
}
