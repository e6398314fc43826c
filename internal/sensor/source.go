package sensor

import (
	"context"
	"time"
)

// Source abstracts where readings come from: the station's HTTP API or the
// mock generator used when no API is configured.
type Source interface {
	Name() string
	Current(ctx context.Context) (Reading, error)
	Historical(ctx context.Context, start, end time.Time) ([]Reading, error)
}

// Store is the contract the in-memory reading history must satisfy.
type Store interface {
	Save(r Reading)
	SaveAll(rs []Reading)
	Latest() (Reading, error)
	Range(from, to time.Time) ([]Reading, error)
}
