package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

const memoryPath = ":memory:"

// Open connects to the SQLite file at path, creating parent directories as
// needed, and migrates the schema. WAL journaling plus a busy timeout let the
// engine serialize concurrent writers.
func Open(path string, logger *zap.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := path
	if path != memoryPath && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dir, err)
			}
		}
		dsn = path + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newGormLogger(logger)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if path == memoryPath {
		// Each connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("sqlite database ready", zap.String("path", path))
	return db, nil
}

// Migrate creates or updates the production_data and users tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Entry{}); err != nil {
		return fmt.Errorf("auto migrate schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(logger),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
