package sensor

import (
	"math"
	"time"
)

// Reading is one timestamped snapshot of all weather variables reported by the
// station. JSON field names match what the dashboard front end expects.
type Reading struct {
	Timestamp      time.Time `json:"timestamp"` // always UTC
	Temperature    float64   `json:"temperature"`
	Humidity       float64   `json:"humidity"`
	Rainfall       float64   `json:"rainfall"`
	WindSpeed      float64   `json:"windSpeed"`
	MaxWindSpeed   float64   `json:"maxWindSpeed"`
	WindDirection  float64   `json:"windDirection"`
	SolarRadiation float64   `json:"solarRadiation"`
	UVIndex        float64   `json:"uvIndex"`
}

// Range holds the bounds of a variable and the amplitude of a single random step.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp bounds v to [r.Min, r.Max].
func (r Range) Clamp(v float64) float64 {
	return Clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies within [r.Min, r.Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// RangeTable lists the range of every variable in a Reading.
type RangeTable struct {
	Temperature    Range
	Humidity       Range
	Rainfall       Range
	WindSpeed      Range
	MaxWindSpeed   Range
	WindDirection  Range
	SolarRadiation Range
	UVIndex        Range
}

// Ranges is the fixed range table used for generation and validation.
var Ranges = RangeTable{
	Temperature:    Range{Min: -5, Max: 38, Step: 0.6},
	Humidity:       Range{Min: 25, Max: 90, Step: 2.5},
	Rainfall:       Range{Min: 0, Max: 12, Step: 2},
	WindSpeed:      Range{Min: 0.2, Max: 8, Step: 0.5},
	MaxWindSpeed:   Range{Min: 0.5, Max: 12, Step: 1},
	WindDirection:  Range{Min: 0, Max: 360, Step: 12},
	SolarRadiation: Range{Min: 0, Max: 65000, Step: 3500},
	UVIndex:        Range{Min: 0, Max: 15000, Step: 1200},
}

// InRange reports whether every field of r lies within its declared range.
// Wind direction must additionally be strictly below 360.
func (r Reading) InRange() bool {
	return Ranges.Temperature.Contains(r.Temperature) &&
		Ranges.Humidity.Contains(r.Humidity) &&
		Ranges.Rainfall.Contains(r.Rainfall) &&
		Ranges.WindSpeed.Contains(r.WindSpeed) &&
		Ranges.MaxWindSpeed.Contains(r.MaxWindSpeed) &&
		r.WindDirection >= 0 && r.WindDirection < 360 &&
		Ranges.SolarRadiation.Contains(r.SolarRadiation) &&
		Ranges.UVIndex.Contains(r.UVIndex)
}

// Clamp returns min when v < min, max when v > max and v otherwise.
func Clamp(v, min, max float64) float64 {
	return math.Min(max, math.Max(min, v))
}

// WrapAngle reduces v modulo 360 into [0, 360).
func WrapAngle(v float64) float64 {
	a := math.Mod(v, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360.
	if a >= 360 {
		a = 0
	}
	return a
}
