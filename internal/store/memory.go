package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

var (
	// ErrNotFound is returned when no readings match a query.
	ErrNotFound = errors.New("no sensor readings available")
)

// MemoryStore is a concurrency-safe in-memory history of station readings,
// kept in timestamp order.
type MemoryStore struct {
	mu       sync.RWMutex
	readings []sensor.Reading

	// retention configuration
	maxHistory int           // max number of readings kept
	maxAge     time.Duration // optional max age for readings

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a reading and enforces retention.
func (s *MemoryStore) Save(r sensor.Reading) {
	s.SaveAll([]sensor.Reading{r})
}

// SaveAll appends a batch of readings and enforces retention.
func (s *MemoryStore) SaveAll(rs []sensor.Reading) {
	if len(rs) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = append(s.readings, rs...)
	sort.SliceStable(s.readings, func(i, j int) bool {
		return s.readings[i].Timestamp.Before(s.readings[j].Timestamp)
	})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.readings) > s.maxHistory {
		over := len(s.readings) - s.maxHistory
		s.readings = s.readings[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := sort.Search(len(s.readings), func(i int) bool {
			return !s.readings[i].Timestamp.Before(cutoff)
		})
		s.readings = s.readings[i:]
	}
}

// Latest returns the most recent reading.
func (s *MemoryStore) Latest() (sensor.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return sensor.Reading{}, ErrNotFound
	}
	return s.readings[len(s.readings)-1], nil
}

// Range returns all readings between from and to (inclusive).
func (s *MemoryStore) Range(from, to time.Time) ([]sensor.Reading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []sensor.Reading
	for _, r := range s.readings {
		if !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}

// Len returns the number of readings held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}
