package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultHistoryWindow is the span of history loaded when the dashboard starts.
const DefaultHistoryWindow = 20 * time.Hour

// Service exposes readings from the configured Source and keeps a rolling
// history of polled readings in a Store.
type Service struct {
	source Source
	store  Store
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new Service.
func NewService(source Source, store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		source: source,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// SourceName returns the name of the underlying source.
func (s *Service) SourceName() string {
	return s.source.Name()
}

// Current returns the current reading straight from the source.
func (s *Service) Current(ctx context.Context) (Reading, error) {
	return s.source.Current(ctx)
}

// Historical returns readings between start and end straight from the source.
func (s *Service) Historical(ctx context.Context, start, end time.Time) ([]Reading, error) {
	return s.source.Historical(ctx, start, end)
}

// Poll fetches the current reading and appends it to the store.
func (s *Service) Poll(ctx context.Context) error {
	r, err := s.Current(ctx)
	if err != nil {
		return fmt.Errorf("poll %s: %w", s.source.Name(), err)
	}
	s.store.Save(r)
	s.log.Debug("stored reading", "source", s.source.Name(), "timestamp", r.Timestamp)
	return nil
}

// Prime loads the default history window into the store so the dashboard has
// a trend to plot before the first poll.
func (s *Service) Prime(ctx context.Context) error {
	end := s.now()
	rs, err := s.Historical(ctx, end.Add(-DefaultHistoryWindow), end)
	if err != nil {
		return fmt.Errorf("prime history from %s: %w", s.source.Name(), err)
	}
	s.store.SaveAll(rs)
	s.log.Info("history primed", "source", s.source.Name(), "readings", len(rs))
	return nil
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Reading, error) {
	return s.store.Latest()
}

// Recent delegates to the underlying store.
func (s *Service) Recent(from, to time.Time) ([]Reading, error) {
	return s.store.Range(from, to)
}
