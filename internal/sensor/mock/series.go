package mock

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

// Series seeds count readings spaced interval apart, oldest first, with the
// last one at end.
func Series(rnd Rand, end time.Time, count int, interval time.Duration, loc *time.Location) []sensor.Reading {
	if count <= 0 {
		return []sensor.Reading{}
	}
	out := make([]sensor.Reading, 0, count)
	for i := count - 1; i >= 0; i-- {
		t := end.Add(-time.Duration(i) * interval)
		out = append(out, Seed(rnd, t, loc))
	}
	return out
}
