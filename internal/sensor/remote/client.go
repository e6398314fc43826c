package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

// Config describes how to reach the station API.
type Config struct {
	BaseURL        string
	CurrentPath    string
	HistoricalPath string
	Auth           Auth
	Timeout        time.Duration
	// Location reads timestamps sent without a zone offset. Defaults to time.Local.
	Location       *time.Location
}

// Client implements sensor.Source against the station's HTTP API.
type Client struct {
	name    string
	cfg     Config
	header  http.Header
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *slog.Logger
	now     func() time.Time
}

// NewClient creates a Client. A nil log falls back to slog.Default.
func NewClient(client *http.Client, cfg Config, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sensor-api",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		name:    "sensor-api",
		cfg:     cfg,
		header:  BuildHeaders(cfg.Auth),
		client:  client,
		circuit: cb,
		log:     log.With("source", "sensor-api"),
		now:     time.Now,
	}
}

func (c *Client) Name() string {
	return c.name
}

// Current fetches the station's current reading.
func (c *Client) Current(ctx context.Context) (sensor.Reading, error) {
	u := c.endpoint(c.cfg.CurrentPath, nil)

	var it item
	if err := c.get(ctx, u, &it); err != nil {
		c.log.Error("fetch current sensor data failed", "url", u, "err", err)
		return sensor.Reading{}, err
	}

	r, err := it.toReading(c.now(), c.cfg.Location)
	if err != nil {
		c.log.Error("fetch current sensor data failed", "url", u, "err", err)
		return sensor.Reading{}, err
	}
	return r, nil
}

// Historical fetches readings between start and end.
func (c *Client) Historical(ctx context.Context, start, end time.Time) ([]sensor.Reading, error) {
	values := url.Values{}
	values.Set("start", start.UTC().Format(time.RFC3339))
	values.Set("end", end.UTC().Format(time.RFC3339))
	u := c.endpoint(c.cfg.HistoricalPath, values)

	var items []item
	if err := c.get(ctx, u, &items); err != nil {
		c.log.Error("fetch historical sensor data failed", "url", u, "err", err)
		return nil, err
	}

	now := c.now()
	out := make([]sensor.Reading, 0, len(items))
	for i, it := range items {
		r, err := it.toReading(now, c.cfg.Location)
		if err != nil {
			err = fmt.Errorf("item %d: %w", i, err)
			c.log.Error("fetch historical sensor data failed", "url", u, "err", err)
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *Client) endpoint(path string, values url.Values) string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}

// get issues a bounded GET and decodes the JSON body into dst.
func (c *Client) get(ctx context.Context, u string, dst any) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	resp, err := doRequest(ctx, c.client, c.circuit, u, c.header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}
