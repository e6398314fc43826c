package mock

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

const (
	temperatureReversion = 0.05
	humidityReversion    = 0.02
	walkRainChance       = 0.08
	// maxWindSpeed drifts downward on average: deltas are (u-0.4)*step.
	maxWindBias = 0.4
)

// smoothNext moves current by a random delta bounded by the range's step.
func smoothNext(rnd Rand, current float64, r sensor.Range) float64 {
	return r.Clamp(current + jitter(rnd, r.Step))
}

// Step produces the reading that follows prev at instant t. Temperature and
// humidity are pulled toward a daylight target before the random step; solar
// radiation and UV index are redrawn around their target each tick.
func Step(rnd Rand, prev sensor.Reading, t time.Time, loc *time.Location) sensor.Reading {
	d := DaylightFactor(t.In(loc))
	rg := sensor.Ranges

	tempTarget := 16 + 8*d
	humidityTarget := 60 * (1 - d)

	temperature := smoothNext(rnd, prev.Temperature+(tempTarget-prev.Temperature)*temperatureReversion, rg.Temperature)
	humidity := smoothNext(rnd, prev.Humidity+(humidityTarget-prev.Humidity)*humidityReversion, rg.Humidity)

	var rainfall float64
	switch {
	case prev.Rainfall > 0:
		rainfall = smoothNext(rnd, prev.Rainfall, rg.Rainfall)
	case rnd.Float64() < walkRainChance:
		rainfall = uniform(rnd, 0, 5)
	}

	windSpeed := smoothNext(rnd, prev.WindSpeed, rg.WindSpeed)
	maxWindSpeed := rg.MaxWindSpeed.Clamp(prev.MaxWindSpeed + (rnd.Float64()-maxWindBias)*rg.MaxWindSpeed.Step)
	windDirection := sensor.WrapAngle(prev.WindDirection + jitter(rnd, rg.WindDirection.Step/2))
	solarRadiation := rg.SolarRadiation.Clamp(52000*d + jitter(rnd, rg.SolarRadiation.Step/2))
	uvIndex := rg.UVIndex.Clamp(9500*d + jitter(rnd, rg.UVIndex.Step/2))

	return sensor.Reading{
		Timestamp:      t.UTC(),
		Temperature:    temperature,
		Humidity:       humidity,
		Rainfall:       rainfall,
		WindSpeed:      windSpeed,
		MaxWindSpeed:   maxWindSpeed,
		WindDirection:  windDirection,
		SolarRadiation: solarRadiation,
		UVIndex:        uvIndex,
	}
}
