package locale

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bassista/go_folio/internal/logger"
	"github.com/google/uuid"
)

var (
	// ErrAlreadyMounted is returned by a second Mount call.
	ErrAlreadyMounted = errors.New("widget already mounted")
	// ErrClosed is returned when mounting a widget that was torn down.
	ErrClosed = errors.New("widget closed")
)

// Widget owns the shared location state. The resolver pipeline is its only
// writer; any number of readers observe it through Display or Subscribe.
type Widget struct {
	resolver *Resolver
	clock    *Clock
	interval time.Duration
	refresh  time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
	display  Display
	subs     map[uuid.UUID]chan Display
	mounted  bool

	alive     atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// WidgetOption tunes a Widget.
type WidgetOption func(*Widget)

// WithRefresh re-runs the lookups every d after the first resolution. Zero
// resolves once per mount.
func WithRefresh(d time.Duration) WidgetOption {
	return func(w *Widget) {
		if d > 0 {
			w.refresh = d
		}
	}
}

// NewWidget starts from the resolver's fallback snapshot. Nothing runs
// until Mount.
func NewWidget(resolver *Resolver, clock *Clock, interval time.Duration, opts ...WidgetOption) *Widget {
	if interval <= 0 {
		interval = time.Second
	}
	w := &Widget{
		resolver: resolver,
		clock:    clock,
		interval: interval,
		snapshot: resolver.Fallback(),
		subs:     make(map[uuid.UUID]chan Display),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.display = clock.Render(w.snapshot)
	w.alive.Store(true)
	return w
}

// Mount starts the clock ticker and the resolver pipeline. Both stop when
// ctx is cancelled or Close is called.
func (w *Widget) Mount(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive.Load() {
		return ErrClosed
	}
	if w.mounted {
		return ErrAlreadyMounted
	}
	w.mounted = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.runClock(ctx)
	}()
	go func() {
		defer w.wg.Done()
		w.runResolver(ctx)
	}()

	logger.WithComponent("locale").
		WithField("city", w.snapshot.City).
		WithField("timezone", w.snapshot.Timezone).
		Info("Location widget mounted")
	return nil
}

// Alive reports whether the widget is still accepting results.
func (w *Widget) Alive() bool {
	return w.alive.Load()
}

// Snapshot returns the current location and weather.
func (w *Widget) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// Display returns the most recently rendered pill.
func (w *Widget) Display() Display {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.display
}

// Subscribe returns a channel that receives the current display right away
// and every change after it. Slow readers only see the latest value. The
// channel is closed by cancel or by Close.
func (w *Widget) Subscribe() (uuid.UUID, <-chan Display, func()) {
	id := uuid.New()
	ch := make(chan Display, 1)

	w.mu.Lock()
	if !w.alive.Load() {
		w.mu.Unlock()
		close(ch)
		return id, ch, func() {}
	}
	ch <- w.display
	w.subs[id] = ch
	w.mu.Unlock()

	return id, ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if sub, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(sub)
		}
	}
}

// Close tears the widget down. Pending lookups are cancelled and any result
// arriving afterwards is discarded. Close is idempotent.
func (w *Widget) Close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.alive.Store(false)
		cancel := w.cancel
		for id, sub := range w.subs {
			delete(w.subs, id)
			close(sub)
		}
		w.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		w.wg.Wait()
		logger.WithComponent("locale").Info("Location widget closed")
	})
}

// apply stores a wholesale snapshot replacement and re-renders at once so a
// timezone change is visible before the next tick.
func (w *Widget) apply(snap Snapshot) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive.Load() {
		return false
	}
	w.snapshot = snap
	w.renderLocked()
	return true
}

// applyRefresh is apply for later rounds: while the place is unchanged the
// previous temperature stays until a new reading replaces it.
func (w *Widget) applyRefresh(snap Snapshot) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.alive.Load() {
		return false
	}
	if snap.TemperatureC == nil && snap.City == w.snapshot.City && snap.Timezone == w.snapshot.Timezone {
		snap.TemperatureC = w.snapshot.TemperatureC
	}
	w.snapshot = snap
	w.renderLocked()
	return true
}

func (w *Widget) runResolver(ctx context.Context) {
	w.resolver.Resolve(ctx, w.apply)
	if w.refresh <= 0 {
		return
	}

	ticker := time.NewTicker(w.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.resolver.Resolve(ctx, w.applyRefresh)
		}
	}
}

func (w *Widget) runClock(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			if w.alive.Load() {
				w.renderLocked()
			}
			w.mu.Unlock()
		}
	}
}

func (w *Widget) renderLocked() {
	next := w.clock.Render(w.snapshot)
	if next == w.display {
		return
	}
	w.display = next
	for _, sub := range w.subs {
		select {
		case sub <- next:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- next
		}
	}
}
