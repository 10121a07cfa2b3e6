package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "data/tracker.db", cfg.Database.Path)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.UTC, cfg.Reporting.Location)
	assert.False(t, cfg.Sheets.Enabled())
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "timezone", key: "TIMEZONE", val: "Mars/Olympus"},
		{name: "session ttl", key: "SESSION_TTL", val: "soon"},
		{name: "half configured sheets", key: "GOOGLE_SHEET_DATABASE_ID", val: "sheet-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "test-secret")
			t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadResolvesTimezone(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("TIMEZONE", "Europe/Berlin")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", cfg.Reporting.Location.String())
}
