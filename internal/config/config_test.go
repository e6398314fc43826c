package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaultsToMock(t *testing.T) {
	t.Setenv("SENSOR_API_BASE_URL", "")
	t.Setenv("USE_MOCK_DATA", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.UseMockData {
		t.Fatalf("expected mock data without a base URL")
	}
	if cfg.UpdateInterval != 30*time.Second || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected defaults: interval=%v timeout=%v", cfg.UpdateInterval, cfg.RequestTimeout)
	}
	if cfg.CurrentPath != "/sensors/current" || cfg.HistoricalPath != "/sensors/historical" {
		t.Fatalf("unexpected default paths %q %q", cfg.CurrentPath, cfg.HistoricalPath)
	}
}

func TestLoadRemote(t *testing.T) {
	t.Setenv("SENSOR_API_BASE_URL", "https://api.example.com/v1")
	t.Setenv("USE_MOCK_DATA", "")
	t.Setenv("SENSOR_API_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STATION_TZ", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UseMockData {
		t.Fatalf("expected remote mode with a base URL")
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.StationLocation != time.UTC {
		t.Fatalf("expected UTC station location, got %v", cfg.StationLocation)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"remote without url": {"USE_MOCK_DATA", "false"},
		"bad interval":       {"UPDATE_INTERVAL", "soon"},
		"bad env":            {"APP_ENV", "staging"},
		"bad bool":           {"USE_MOCK_DATA", "maybe"},
		"bad tz":             {"STATION_TZ", "Mars/Olympus"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SENSOR_API_BASE_URL", "")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
