// Package debounce delays calls until input has been quiet for a window.
package debounce

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/service"
)

// Debouncer runs the most recently triggered function once no new trigger
// has arrived for the configured window.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
	gen    uint64
}

var _ service.Debouncer = (*Debouncer)(nil)

// New creates a debouncer with the given quiet window.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn and cancels any previously scheduled call that has not
// started yet. A call already running is not interrupted.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()

		// A timer that fired while being replaced must not run
		if current {
			fn()
		}
	})
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Registry hands out one debouncer per key.
type Registry struct {
	mu        sync.Mutex
	window    time.Duration
	debounced map[string]*Debouncer
}

// NewRegistry creates an empty registry whose debouncers use window.
func NewRegistry(window time.Duration) *Registry {
	return &Registry{
		window:    window,
		debounced: make(map[string]*Debouncer),
	}
}

// Get returns the debouncer for key, creating it on first use.
func (r *Registry) Get(key string) service.Debouncer {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.debounced[key]
	if !ok {
		d = New(r.window)
		r.debounced[key] = d
	}

	return d
}

// Remove stops and forgets the debouncer for key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	d, ok := r.debounced[key]
	delete(r.debounced, key)
	r.mu.Unlock()

	if ok {
		d.Stop()
	}
}

// StopAll cancels every pending call.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, d := range r.debounced {
		d.Stop()
		delete(r.debounced, key)
	}
}

var _ service.DebouncerRegistry = (*Registry)(nil)

// RegistryParams holds dependencies for the debouncer registry, injected by Fx
type RegistryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
}

// NewSearchDebouncers builds the per-map registry used by the search box and
// cancels pending fetches on shutdown.
func NewSearchDebouncers(params RegistryParams) service.DebouncerRegistry {
	registry := NewRegistry(params.Config.Geocoding.Debounce)

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			registry.StopAll()

			return nil
		},
	})

	return registry
}

// Module provides the debounce FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewSearchDebouncers),
)
