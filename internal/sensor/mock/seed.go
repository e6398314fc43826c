package mock

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

const seedRainChance = 0.12

// Seed generates a reading for t with no dependency on earlier readings.
// Variables driven by daylight use the wall clock of loc.
func Seed(rnd Rand, t time.Time, loc *time.Location) sensor.Reading {
	d := DaylightFactor(t.In(loc))
	rg := sensor.Ranges

	temperature := 16 + 8*d + jitter(rnd, 1.25)
	humidity := 55 + 20*(1-d) + jitter(rnd, 3)

	var rainfall float64
	if rnd.Float64() < seedRainChance {
		rainfall = uniform(rnd, 0, 6)
	}

	windSpeed := rg.WindSpeed.Clamp(1.2 + uniform(rnd, 0, 1.5))
	maxWindSpeed := windSpeed + uniform(rnd, 0, 2)
	windDirection := uniform(rnd, 0, 360)
	solarRadiation := 50000*d + uniform(rnd, 0, 5000)
	uvIndex := 9000*d + uniform(rnd, 0, 1200)

	return sensor.Reading{
		Timestamp:      t.UTC(),
		Temperature:    rg.Temperature.Clamp(temperature),
		Humidity:       rg.Humidity.Clamp(humidity),
		Rainfall:       rg.Rainfall.Clamp(rainfall),
		WindSpeed:      windSpeed,
		MaxWindSpeed:   rg.MaxWindSpeed.Clamp(maxWindSpeed),
		WindDirection:  sensor.WrapAngle(windDirection),
		SolarRadiation: rg.SolarRadiation.Clamp(solarRadiation),
		UVIndex:        rg.UVIndex.Clamp(uvIndex),
	}
}
