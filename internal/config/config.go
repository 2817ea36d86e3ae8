// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ericfisherdev/formpanel/internal/application"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DBPath     string
	// Schema is where the form schema is loaded from: empty for the embedded
	// default, an http(s) URL, or a file path.
	Schema   string
	Locale   string
	LogLevel slog.Level
}

// SchemaKind describes Schema for startup logging.
func (c *Config) SchemaKind() string {
	switch {
	case c.Schema == "":
		return "embedded"
	case strings.HasPrefix(c.Schema, "http://"), strings.HasPrefix(c.Schema, "https://"):
		return "remote"
	default:
		return "file"
	}
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: FORMPANEL_LISTEN_ADDR (127.0.0.1:8080),
// FORMPANEL_DB_PATH (formpanel.db), FORMPANEL_SCHEMA (embedded),
// FORMPANEL_LOCALE (en) and FORMPANEL_LOG_LEVEL (info).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("FORMPANEL_LISTEN_ADDR"); ok && v != "" {
		listenAddr = v
	}

	dbPath := "formpanel.db"
	if v, ok := os.LookupEnv("FORMPANEL_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	schema := strings.TrimSpace(os.Getenv("FORMPANEL_SCHEMA"))

	locale := "en"
	if v, ok := os.LookupEnv("FORMPANEL_LOCALE"); ok && v != "" {
		if !slices.Contains(application.SupportedLocales(), v) {
			return nil, fmt.Errorf("FORMPANEL_LOCALE has unsupported locale %q (supported: %s)",
				v, strings.Join(application.SupportedLocales(), ", "))
		}
		locale = v
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("FORMPANEL_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("FORMPANEL_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		Schema:     schema,
		Locale:     locale,
		LogLevel:   logLevel,
	}, nil
}
