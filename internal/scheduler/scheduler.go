package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

const (
	defaultInterval = 30 * time.Second
	pollTimeout     = 20 * time.Second
)

// Poller is the work run on every tick.
type Poller interface {
	Poll(ctx context.Context) error
}

// Scheduler periodically polls the station for a new reading.
type Scheduler struct {
	scheduler *gocron.Scheduler
	poller    Poller
	interval  time.Duration
	log       *slog.Logger
}

// New creates a new Scheduler. A non-positive interval falls back to 30s.
func New(interval time.Duration, poller Poller, log *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		poller:    poller,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the polling job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler started", "interval", s.interval.String())
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), pollTimeout)
	defer cancel()

	if err := s.poller.Poll(ctx); err != nil {
		s.log.Warn("scheduler: poll failed", "err", err)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
