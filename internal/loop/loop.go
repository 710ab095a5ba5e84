// Package loop drives per-frame updates with a clamped delta.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Updater advances some state by delta seconds.
type Updater interface {
	Update(delta float64)
}

// UpdaterFunc adapts a function to Updater.
type UpdaterFunc func(delta float64)

// Update calls f(delta).
func (f UpdaterFunc) Update(delta float64) { f(delta) }

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for frame statistics.
func WithLogger(log *zap.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// Loop runs registered updaters once per tick. A tick's delta never
// exceeds deltaMax, so a stalled process resumes with one bounded step
// instead of a jump.
type Loop struct {
	deltaMax float64
	log      *zap.Logger

	mu       sync.Mutex
	updaters []Updater
	last     time.Time
	frames   uint64

	active atomic.Bool
}

// New creates an inactive loop.
func New(deltaMax float64, opts ...Option) *Loop {
	l := &Loop{deltaMax: deltaMax, log: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers an updater. Updaters run in registration order.
func (l *Loop) Add(u Updater) {
	l.mu.Lock()
	l.updaters = append(l.updaters, u)
	l.mu.Unlock()
}

// Start activates the loop; the first tick measures from now.
func (l *Loop) Start(now time.Time) {
	l.mu.Lock()
	l.last = now
	l.mu.Unlock()
	l.active.Store(true)
}

// Stop deactivates the loop. Run returns after the current tick.
func (l *Loop) Stop() { l.active.Store(false) }

// Active reports whether the loop is running.
func (l *Loop) Active() bool { return l.active.Load() }

// DeltaMax returns the upper bound on a tick's delta.
func (l *Loop) DeltaMax() float64 { return l.deltaMax }

// Frames returns the number of steps taken so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Tick measures the time since the previous tick, steps by it and
// returns the delta used. An inactive loop does nothing and returns 0.
func (l *Loop) Tick(now time.Time) float64 {
	if !l.Active() {
		return 0
	}
	l.mu.Lock()
	elapsed := now.Sub(l.last).Seconds()
	l.last = now
	l.mu.Unlock()
	return l.Step(elapsed)
}

// Step runs every updater with delta clamped to [0, deltaMax] and returns
// the clamped delta.
func (l *Loop) Step(delta float64) float64 {
	delta = max(0, min(delta, l.deltaMax))

	l.mu.Lock()
	updaters := l.updaters
	l.frames++
	l.mu.Unlock()

	for _, u := range updaters {
		u.Update(delta)
	}
	return delta
}

// Run starts the loop and ticks it every interval until the context is
// cancelled or Stop is called. It returns the context's error on
// cancellation and nil after Stop.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.Start(time.Now())
	defer l.Stop()

	frames := 0
	fpsTimer := time.Now()

	l.log.Debug("starting loop", zap.Duration("interval", interval), zap.Float64("delta_max", l.deltaMax))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := l.Tick(now)
			if !l.Active() {
				return nil
			}

			frames++
			if now.Sub(fpsTimer) >= time.Second {
				l.log.Debug("fps", zap.Int("count", frames), zap.Float64("dt", dt))
				frames = 0
				fpsTimer = now
			}
		}
	}
}
