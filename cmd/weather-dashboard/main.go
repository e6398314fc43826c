package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/logging"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/sensor"
	"github.com/i474232898/weather-dashboard/internal/sensor/mock"
	"github.com/i474232898/weather-dashboard/internal/sensor/remote"
	"github.com/i474232898/weather-dashboard/internal/store"
)

const appName = "weather-dashboard"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "prod", 0, appName).Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.AppEnv, cfg.LogLevel, appName)

	// Pick the reading source: generated data or the station API.
	var source sensor.Source
	if cfg.UseMockData {
		source = mock.New(mock.Options{Location: cfg.StationLocation})
		log.Info("using mock sensor data", "tz", cfg.StationLocation.String())
	} else {
		httpClient := &http.Client{
			Timeout: cfg.RequestTimeout,
		}
		source = remote.NewClient(httpClient, remote.Config{
			BaseURL:        cfg.BaseURL,
			CurrentPath:    cfg.CurrentPath,
			HistoricalPath: cfg.HistoricalPath,
			Auth: remote.Auth{
				APIKey:      cfg.APIKey,
				HeaderName:  cfg.APIKeyHeader,
				BearerToken: cfg.BearerToken,
				Username:    cfg.Username,
				Password:    cfg.Password,
			},
			Timeout:  cfg.RequestTimeout,
			Location: cfg.StationLocation,
		}, log)
		log.Info("using sensor api", "baseURL", cfg.BaseURL)
	}

	// In-memory history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	service := sensor.NewService(source, memStore, log)

	primeCtx, cancelPrime := context.WithTimeout(context.Background(), 30*time.Second)
	if err := service.Prime(primeCtx); err != nil {
		log.Warn("starting without history", "err", err)
	}
	cancelPrime()

	// Scheduler that periodically polls the current reading.
	sched := scheduler.New(cfg.UpdateInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
			"source":  service.SourceName(),
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()
	log.Info("listening", "port", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
}
