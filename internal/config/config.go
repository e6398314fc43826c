package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppEnv   string // dev or prod
	LogLevel slog.Level
	Port     string

	// UseMockData serves generated readings instead of calling the station API.
	UseMockData bool

	// Station API.
	BaseURL        string
	CurrentPath    string
	HistoricalPath string
	APIKey         string
	APIKeyHeader   string
	BearerToken    string
	Username       string
	Password       string
	RequestTimeout time.Duration

	// UpdateInterval controls how often the current reading is polled.
	UpdateInterval time.Duration

	// StationLocation is the time zone whose wall clock drives the mock daylight model.
	StationLocation *time.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of readings (0 = unlimited)
	StoreMaxAge     time.Duration // max age of readings (0 = unlimited)
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	cfg := &AppConfig{}

	cfg.AppEnv = getenvDefault("APP_ENV", "dev")
	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.BaseURL = strings.TrimSpace(os.Getenv("SENSOR_API_BASE_URL"))
	cfg.CurrentPath = getenvDefault("SENSOR_API_CURRENT_PATH", "/sensors/current")
	cfg.HistoricalPath = getenvDefault("SENSOR_API_HISTORICAL_PATH", "/sensors/historical")
	cfg.APIKey = os.Getenv("SENSOR_API_KEY")
	cfg.APIKeyHeader = getenvDefault("SENSOR_API_KEY_HEADER", "X-API-Key")
	cfg.BearerToken = os.Getenv("SENSOR_API_BEARER_TOKEN")
	cfg.Username = os.Getenv("SENSOR_API_USERNAME")
	cfg.Password = os.Getenv("SENSOR_API_PASSWORD")

	// Without a base URL there is nothing to call, so mock data is the default.
	cfg.UseMockData, err = getenvBool("USE_MOCK_DATA", cfg.BaseURL == "")
	if err != nil {
		return nil, err
	}
	if !cfg.UseMockData && cfg.BaseURL == "" {
		return nil, fmt.Errorf("SENSOR_API_BASE_URL is required when USE_MOCK_DATA is false")
	}

	if cfg.RequestTimeout, err = getenvDuration("SENSOR_API_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.UpdateInterval, err = getenvDuration("UPDATE_INTERVAL", "30s"); err != nil {
		return nil, err
	}

	cfg.StationLocation = time.Local
	if tz := os.Getenv("STATION_TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid STATION_TZ: %w", err)
		}
		cfg.StationLocation = loc
	}

	// Store retention.
	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 2880) // 24h at 30-second polls
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
