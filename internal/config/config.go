package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SchemaNames maps pipeline layers to Postgres schemas. Ignored by the
// SQLite driver, which has no schema support.
type SchemaNames struct {
	Raw          string
	Staging      string
	Intermediate string
	Marts        string
}

// Config holds all pipeline settings, populated from environment variables.
// A .env file in the working directory is loaded first when present.
type Config struct {
	// Store connection.
	StoreDriver string // "sqlite" or "postgres"
	StoreDSN    string
	Schemas     SchemaNames

	// Raw-layer retention applied by the loader; 0 keeps everything.
	RetentionDays int

	// Marts Parquet export; empty disables.
	ExportDir string

	// Observability endpoint; empty disables the HTTP server.
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// First day of the generated date spine.
	SpineStart time.Time
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	// Best-effort: a missing .env is the normal production case.
	_ = godotenv.Load()

	retentionDays, err := envInt("RETENTION_DAYS", 0)
	if err != nil {
		return nil, err
	}
	if retentionDays < 0 {
		return nil, fmt.Errorf("RETENTION_DAYS must not be negative, got %d", retentionDays)
	}

	spineStart, err := envDate("SPINE_START_DATE", "2023-01-01")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		StoreDriver: envOrDefault("STORE_DRIVER", "sqlite"),
		StoreDSN:    envOrDefault("STORE_DSN", "weather.db"),
		Schemas: SchemaNames{
			Raw:          os.Getenv("RAW_SCHEMA"),
			Staging:      os.Getenv("STAGING_SCHEMA"),
			Intermediate: os.Getenv("INTERMEDIATE_SCHEMA"),
			Marts:        os.Getenv("MARTS_SCHEMA"),
		},
		RetentionDays:   retentionDays,
		ExportDir:       os.Getenv("EXPORT_DIR"),
		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		SpineStart:      spineStart,
	}

	if cfg.StoreDriver != "sqlite" && cfg.StoreDriver != "postgres" {
		return nil, fmt.Errorf("STORE_DRIVER must be sqlite or postgres, got %q", cfg.StoreDriver)
	}
	if cfg.StoreDSN == "" {
		return nil, fmt.Errorf("STORE_DSN is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDate(key, def string) (time.Time, error) {
	v := envOrDefault(key, def)
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return t, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, v)
	}
	return d, nil
}
