package remote

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

// item is one reading as returned by the station API. Field names vary between
// deployments (camelCase or snake_case) and numbers may arrive as strings.
type item map[string]any

// number returns the first key present with a non-null value, parsed as a float.
func (it item) number(keys ...string) (float64, bool, error) {
	for _, k := range keys {
		v, ok := it[k]
		if !ok || v == nil {
			continue
		}
		var (
			f   float64
			err error
		)
		switch n := v.(type) {
		case json.Number:
			f, err = n.Float64()
		case string:
			f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
		default:
			return 0, true, fmt.Errorf("%s: unsupported value %v", k, v)
		}
		if err != nil {
			return 0, true, fmt.Errorf("%s: %w", k, err)
		}
		// ParseFloat accepts "NaN" and "Inf", which cannot be served as JSON.
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, true, fmt.Errorf("%s: non-finite value %v", k, v)
		}
		return f, true, nil
	}
	return 0, false, nil
}

func (it item) required(keys ...string) (float64, error) {
	f, ok, err := it.number(keys...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("missing %s", strings.Join(keys, "/"))
	}
	return f, nil
}

// localLayout is the zone-less timestamp some stations emit.
const localLayout = "2006-01-02T15:04:05"

// parseTimestamp accepts RFC3339 or a zone-less local time read in loc.
func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	return time.ParseInLocation(localLayout, s, loc)
}

// toReading maps an API item onto a Reading. now fills a missing timestamp and
// zone-less timestamps are read in loc.
func (it item) toReading(now time.Time, loc *time.Location) (sensor.Reading, error) {
	var (
		r   sensor.Reading
		err error
	)

	r.Timestamp = now.UTC()
	if raw, ok := it["timestamp"]; ok && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return r, fmt.Errorf("%w: timestamp is not a string", ErrMalformedPayload)
		}
		ts, perr := parseTimestamp(s, loc)
		if perr != nil {
			return r, fmt.Errorf("%w: timestamp: %v", ErrMalformedPayload, perr)
		}
		r.Timestamp = ts.UTC()
	}

	if r.Temperature, err = it.required("temperature"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if r.Humidity, err = it.required("humidity"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if r.Rainfall, _, err = it.number("rainfall"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if r.WindSpeed, err = it.required("windSpeed", "wind_speed"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	maxWind, ok, err := it.number("maxWindSpeed", "max_wind_speed")
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !ok {
		maxWind = r.WindSpeed
	}
	r.MaxWindSpeed = maxWind

	if r.WindDirection, err = it.required("windDirection", "wind_direction"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if r.SolarRadiation, err = it.required("solarRadiation", "solar_radiation"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if r.UVIndex, err = it.required("uvIndex", "uv_index"); err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return r, nil
}
