package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/sensor"
	"github.com/i474232898/weather-dashboard/internal/sensor/mock"
	"github.com/i474232898/weather-dashboard/internal/sensor/remote"
	"github.com/i474232898/weather-dashboard/internal/store"
)

var noon = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMockApp(t *testing.T) (*fiber.App, *sensor.Service) {
	t.Helper()
	gen := mock.New(mock.Options{
		Rand:     rand.New(rand.NewPCG(1, 1)),
		Now:      func() time.Time { return noon },
		Location: time.UTC,
	})
	svc := sensor.NewService(gen, store.NewMemoryStore(100, 0), quietLogger())

	app := fiber.New()
	RegisterRoutes(app, svc)
	return app, svc
}

func doGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestCurrentReturnsReading(t *testing.T) {
	app, _ := newMockApp(t)

	resp := doGet(t, app, "/api/v1/sensors/current")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var r sensor.Reading
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !r.Timestamp.Equal(noon) || !r.InRange() {
		t.Fatalf("unexpected reading %+v", r)
	}
}

func TestHistoricalReturnsSeries(t *testing.T) {
	app, _ := newMockApp(t)

	resp := doGet(t, app, "/api/v1/sensors/historical?start=2024-06-01T11:00:00Z&end=2024-06-01T12:00:00Z")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var rs []sensor.Reading
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rs) != 12 {
		t.Fatalf("expected 12 readings, got %d", len(rs))
	}
}

func TestHistoricalValidation(t *testing.T) {
	app, _ := newMockApp(t)

	targets := []string{
		"/api/v1/sensors/historical",
		"/api/v1/sensors/historical?start=2024-06-01T11:00:00Z",
		"/api/v1/sensors/historical?start=yesterday&end=today",
		"/api/v1/sensors/historical?start=2024-06-01T12:00:00Z&end=2024-06-01T11:00:00Z",
		"/api/v1/sensors/historical?start=2024-05-01T00:00:00Z&end=2024-06-01T00:00:00Z",
	}
	for _, target := range targets {
		resp := doGet(t, app, target)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusBadRequest, resp.StatusCode)
		}
	}
}

func TestLatestAndRecent(t *testing.T) {
	app, svc := newMockApp(t)

	resp := doGet(t, app, "/api/v1/sensors/latest")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d before any poll, got %d", http.StatusNotFound, resp.StatusCode)
	}

	if err := svc.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}

	resp = doGet(t, app, "/api/v1/sensors/latest")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d after poll, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doGet(t, app, "/api/v1/sensors/recent?from=1717239600&to=1717243200")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	var body struct {
		Source   string           `json:"source"`
		Readings []sensor.Reading `json:"readings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Source != "mock" || len(body.Readings) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}

	resp = doGet(t, app, "/api/v1/sensors/recent?from=2024-01-01T00:00:00Z&to=2024-01-01T01:00:00Z")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Current(ctx context.Context) (sensor.Reading, error) {
	return sensor.Reading{}, errors.New("connection refused")
}

func (failingSource) Historical(ctx context.Context, start, end time.Time) ([]sensor.Reading, error) {
	return nil, errors.New("connection refused")
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	svc := sensor.NewService(failingSource{}, store.NewMemoryStore(10, 0), quietLogger())
	app := fiber.New()
	RegisterRoutes(app, svc)

	for _, target := range []string{
		"/api/v1/sensors/current",
		"/api/v1/sensors/historical?start=2024-06-01T11:00:00Z&end=2024-06-01T12:00:00Z",
	} {
		resp := doGet(t, app, target)
		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("%s: expected status %d, got %d", target, http.StatusBadGateway, resp.StatusCode)
		}
	}
}

func TestNonFiniteStationValuesAreNotStored(t *testing.T) {
	station := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"temperature":"NaN","humidity":50,"windSpeed":1,"windDirection":10,"solarRadiation":0,"uvIndex":"Inf"}`))
	}))
	defer station.Close()

	client := remote.NewClient(station.Client(), remote.Config{
		BaseURL:     station.URL,
		CurrentPath: "/sensors/current",
		Timeout:     2 * time.Second,
	}, quietLogger())
	svc := sensor.NewService(client, store.NewMemoryStore(10, 0), quietLogger())
	app := fiber.New()
	RegisterRoutes(app, svc)

	if err := svc.Poll(context.Background()); !errors.Is(err, remote.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload from poll, got %v", err)
	}

	resp := doGet(t, app, "/api/v1/sensors/latest")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp = doGet(t, app, "/api/v1/sensors/current")
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}
