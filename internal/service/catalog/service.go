// Package catalog serves the reference CSV files (orders, machines,
// operators) kept next to the database.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/service/csvio"
)

// ErrUnknownCatalog is returned for names outside Names.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Names lists the catalogs that can be loaded.
var Names = []string{"orders", "machines", "operators"}

// Service reads <dir>/<name>.csv files.
type Service struct {
	dir    string
	logger *zap.Logger
}

// NewService wires a catalog reader rooted at dir.
func NewService(dir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{dir: dir, logger: logger}
}

// Load parses the named catalog into one map per row.
func (s *Service) Load(name string) ([]map[string]string, error) {
	if !slices.Contains(Names, name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCatalog, name)
	}

	path := filepath.Join(s.dir, name+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer file.Close()

	records, err := csvio.ReadRecords(file)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	s.logger.Debug("catalog loaded", zap.String("name", name), zap.Int("rows", len(records)))
	return records, nil
}
