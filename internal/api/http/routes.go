package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/sensor"
	"github.com/i474232898/weather-dashboard/internal/store"
)

// maxWindow bounds a single historical or recent query.
const maxWindow = 7 * 24 * time.Hour

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *sensor.Service) {
	v1 := app.Group("/api/v1/sensors")

	v1.Get("/current", func(c *fiber.Ctx) error {
		reading, err := service.Current(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch sensor data")
		}
		return c.JSON(reading)
	})

	v1.Get("/historical", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c, "start", "end"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := service.Historical(c.UserContext(), req.Start, req.End)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch historical sensor data")
		}
		return c.JSON(readings)
	})

	v1.Get("/latest", func(c *fiber.Ctx) error {
		reading, err := service.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no sensor readings stored yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read sensor data")
		}
		return c.JSON(reading)
	})

	v1.Get("/recent", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c, "from", "to"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		readings, err := service.Recent(req.Start, req.End)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no sensor readings for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read sensor data")
		}

		return c.JSON(fiber.Map{
			"source":   service.SourceName(),
			"from":     req.Start,
			"to":       req.End,
			"readings": readings,
		})
	})
}

// rangeQuery holds the time window of a history query.
type rangeQuery struct {
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtefield=Start"`
}

func (q *rangeQuery) bind(c *fiber.Ctx, startKey, endKey string) error {
	startStr := c.Query(startKey)
	endStr := c.Query(endKey)
	if startStr == "" || endStr == "" {
		return errors.New(startKey + " and " + endKey + " query parameters are required")
	}

	start, err := parseTime(startStr)
	if err != nil {
		return err
	}
	end, err := parseTime(endStr)
	if err != nil {
		return err
	}
	q.Start = start
	q.End = end

	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.End.Sub(q.Start) > maxWindow {
		return errors.New("requested window exceeds 7 days")
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
