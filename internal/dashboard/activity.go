package dashboard

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/bassista/go_folio/internal/logger"
)

// BarCount is the number of bars in the activity strip.
const BarCount = 24

// InitialHeights returns the deterministic heights shown before the first
// randomisation, as percentages in [20, 80).
func InitialHeights() []float64 {
	h := make([]float64, BarCount)
	for i := range h {
		h[i] = float64(20 + (i*37+13)%60)
	}
	return h
}

// ActivityBars periodically replaces its heights with random values in
// [20, 100). With reduced motion it never changes.
type ActivityBars struct {
	interval      time.Duration
	reducedMotion bool
	random        func() float64

	mu      sync.RWMutex
	heights []float64
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewActivityBars builds a randomiser. A nil random uses math/rand.
func NewActivityBars(interval time.Duration, reducedMotion bool, random func() float64) *ActivityBars {
	if interval <= 0 {
		interval = 1200 * time.Millisecond
	}
	if random == nil {
		random = rand.Float64
	}
	return &ActivityBars{
		interval:      interval,
		reducedMotion: reducedMotion,
		random:        random,
		heights:       InitialHeights(),
	}
}

// Heights returns a copy of the current heights.
func (a *ActivityBars) Heights() []float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]float64, len(a.heights))
	copy(out, a.heights)
	return out
}

// Running reports whether the randomiser goroutine is active.
func (a *ActivityBars) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cancel != nil
}

// Start randomises once and then on every interval until ctx is cancelled
// or Stop is called. It is a no-op with reduced motion or when already running.
func (a *ActivityBars) Start(ctx context.Context) {
	if a.reducedMotion {
		logger.WithComponent("dashboard").Debug("reduced motion, activity bars stay static")
		return
	}
	a.mu.Lock()
	if a.cancel != nil {
		a.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	done := a.done
	a.mu.Unlock()

	a.randomize()
	ticker := time.NewTicker(a.interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.WithComponent("dashboard").Debug("activity bars stopped")
				return
			case <-ticker.C:
				a.randomize()
			}
		}
	}()
}

// Stop cancels the randomiser and waits for it to exit.
func (a *ActivityBars) Stop() {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.cancel, a.done = nil, nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (a *ActivityBars) randomize() {
	next := make([]float64, BarCount)
	for i := range next {
		next[i] = 20 + a.random()*80
	}
	a.mu.Lock()
	a.heights = next
	a.mu.Unlock()
}
