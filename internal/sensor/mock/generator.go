package mock

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/sensor"
)

const (
	// DefaultSeriesCount and DefaultSeriesInterval give 20 hours of 5-minute samples.
	DefaultSeriesCount    = 240
	DefaultSeriesInterval = 5 * time.Minute
)

// State holds the most recently produced reading, or nothing before the first one.
type State struct {
	last sensor.Reading
	set  bool
}

// Last returns a copy of the stored reading and whether one is present.
func (s *State) Last() (sensor.Reading, bool) {
	return s.last, s.set
}

func (s *State) store(r sensor.Reading) {
	s.last = r
	s.set = true
}

// Clear empties the state so the next reading is seeded afresh.
func (s *State) Clear() {
	s.last = sensor.Reading{}
	s.set = false
}

// Options configures a Generator. Zero values select the process-wide random
// source, time.Now, the local time zone and a fresh State.
type Options struct {
	Rand     Rand
	Now      func() time.Time
	Location *time.Location
	State    *State
}

// Generator synthesizes plausible readings when no station API is configured.
// Live readings continue smoothly from the tail of the last history it built.
type Generator struct {
	mu    sync.Mutex
	rnd   Rand
	now   func() time.Time
	loc   *time.Location
	state *State
}

// New creates a Generator.
func New(opts Options) *Generator {
	g := &Generator{
		rnd:   opts.Rand,
		now:   opts.Now,
		loc:   opts.Location,
		state: opts.State,
	}
	if g.rnd == nil {
		g.rnd = globalRand{}
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.loc == nil {
		g.loc = time.Local
	}
	if g.state == nil {
		g.state = &State{}
	}
	return g
}

// CurrentReading returns the next live reading: a seed on the first call,
// a smoothed step from the previous reading afterwards.
func (g *Generator) CurrentReading() sensor.Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prev, ok := g.state.Last()
	var next sensor.Reading
	if ok {
		next = Step(g.rnd, prev, now, g.loc)
	} else {
		next = Seed(g.rnd, now, g.loc)
	}
	g.state.store(next)
	return next
}

// HistoricalSeries builds count readings spaced intervalMinutes apart and
// ending now, oldest first. The walker resumes from the newest one.
func (g *Generator) HistoricalSeries(count, intervalMinutes int) []sensor.Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := Series(g.rnd, g.now(), count, time.Duration(intervalMinutes)*time.Minute, g.loc)
	if len(out) > 0 {
		g.state.store(out[len(out)-1])
	}
	return out
}

// DefaultHistoricalSeries is the dashboard's initial history load.
func (g *Generator) DefaultHistoricalSeries() []sensor.Reading {
	return g.HistoricalSeries(DefaultSeriesCount, int(DefaultSeriesInterval/time.Minute))
}

// LastReading returns a copy of the walker state.
func (g *Generator) LastReading() (sensor.Reading, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Last()
}

// Reset empties the walker state.
func (g *Generator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state.Clear()
}

// Name implements sensor.Source.
func (g *Generator) Name() string {
	return "mock"
}

// Current implements sensor.Source.
func (g *Generator) Current(ctx context.Context) (sensor.Reading, error) {
	if err := ctx.Err(); err != nil {
		return sensor.Reading{}, err
	}
	return g.CurrentReading(), nil
}

// Historical implements sensor.Source. It returns one 5-minute sample per
// interval covered by [start, end]; the series always ends now so live
// readings stay continuous with it.
func (g *Generator) Historical(ctx context.Context, start, end time.Time) ([]sensor.Reading, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count := int(math.Ceil(float64(end.Sub(start)) / float64(DefaultSeriesInterval)))
	return g.HistoricalSeries(count, int(DefaultSeriesInterval/time.Minute)), nil
}
