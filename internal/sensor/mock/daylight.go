package mock

import (
	"math"
	"time"
)

// DaylightFactor models how "daytime" t is on a 0-1 scale. It is 0 between
// 18:00 and 06:00 and follows a sine hump peaking at 12:00 in between.
// The wall clock of t's own location is used.
func DaylightFactor(t time.Time) float64 {
	h := float64(t.Hour()) + float64(t.Minute())/60
	return math.Max(0, math.Sin(((h-6)/12)*math.Pi))
}
