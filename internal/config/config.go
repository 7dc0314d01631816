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
	Reference ReferenceConfig
	Session   SessionConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// ReferenceConfig describes where the food composition table is loaded from
// at startup. All sources are optional; the table can also be uploaded at
// runtime. When several are set, a local file wins over a remote URL, which
// wins over a Google Sheets range.
type ReferenceConfig struct {
	FilePath        string
	FileSheet       string
	URL             string
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	TTL       time.Duration
	SweepCron string
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string
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

	ttl, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Reference: ReferenceConfig{
			FilePath:        os.Getenv("REFERENCE_FILE"),
			FileSheet:       os.Getenv("REFERENCE_SHEET"),
			URL:             os.Getenv("REFERENCE_URL"),
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("REFERENCE_SPREADSHEET_ID"),
			SheetRange:      getenvWithDefault("REFERENCE_SPREADSHEET_RANGE", "TKPI!A:AC"),
		},
		Session: SessionConfig{
			TTL:       ttl,
			SweepCron: getenvWithDefault("SESSION_SWEEP_CRON", "*/30 * * * *"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
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

	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	if c.Session.SweepCron == "" {
		return errors.New("SESSION_SWEEP_CRON must be provided")
	}

	if c.Reference.SpreadsheetID != "" && c.Reference.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when REFERENCE_SPREADSHEET_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
