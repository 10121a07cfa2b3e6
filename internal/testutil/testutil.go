// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
)

// SetupTestDB creates an in-memory SQLite database with the application schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Entry{}))
	return db
}

// SeedEntry inserts an entry with the given timestamp and quantities.
func SeedEntry(t *testing.T, db *gorm.DB, at time.Time, operator, machine string, picked, produced, wasted float64) models.Entry {
	t.Helper()

	entry := models.Entry{
		OrderNo:        "ORD-" + at.Format("20060102150405"),
		ItemName:       "Widget",
		OperatorID:     operator,
		MachineID:      machine,
		MaterialPicked: picked,
		ProducedQty:    produced,
		WastedQty:      wasted,
		Status:         models.StatusCompleted,
		EnteredBy:      operator,
		EntryDate:      at.UTC(),
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

// SeedUser inserts an account.
func SeedUser(t *testing.T, db *gorm.DB, username, password string, role models.Role) models.User {
	t.Helper()

	user := models.User{Username: username, Password: password, Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// FixedClock returns a clock function that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
