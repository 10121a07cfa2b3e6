package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Log       LogConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
	Webhook   WebhookConfig
	Seed      SeedConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port      string
	StaticDir string
	DataDir   string
}

// DatabaseConfig points at the embedded SQLite file.
type DatabaseConfig struct {
	Path string
}

// SessionConfig controls the signed session cookie issued at login.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// LogConfig selects the minimum log level.
type LogConfig struct {
	Level string
}

// ReportingConfig holds scheduler and calendar settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
	Location     *time.Location
}

// SheetsConfig contains configuration required to append report rows to Google Sheets.
// Both fields empty disables the sink.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// Enabled reports whether the spreadsheet sink is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for the optional report archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// WebhookConfig holds the optional daily digest webhook.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// SeedConfig points at the user seed file consumed by the seed command.
type SeedConfig struct {
	UsersFile string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	sessionTTL, err := durationWithDefault("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return nil, err
	}
	webhookTimeout, err := durationWithDefault("REPORT_WEBHOOK_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getenvWithDefault("APP_PORT", "8080"),
			StaticDir: os.Getenv("STATIC_DIR"),
			DataDir:   getenvWithDefault("DATA_DIR", "data"),
		},
		Database: DatabaseConfig{
			Path: getenvWithDefault("DATABASE_PATH", "data/tracker.db"),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    sessionTTL,
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			ReportRange:     getenvWithDefault("GOOGLE_SHEET_REPORT_RANGE", "DailyReports!A:H"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "prodtracker"),
		},
		Webhook: WebhookConfig{
			URL:     os.Getenv("REPORT_WEBHOOK_URL"),
			Timeout: webhookTimeout,
		},
		Seed: SeedConfig{
			UsersFile: getenvWithDefault("SEED_USERS_FILE", "data/users.csv"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Database.Path == "" {
		return errors.New("DATABASE_PATH must be provided")
	}

	switch {
	case c.Session.Secret == "":
		return errors.New("SESSION_SECRET must be provided")
	case c.Session.TTL <= 0:
		return errors.New("SESSION_TTL must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Reporting.Timezone, err)
	}
	c.Reporting.Location = loc

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty when MONGODB_URI is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
