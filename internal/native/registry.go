// Package native tracks the native resources one render job acquires
// (working directory, filter script, encoder log, partial output, spawned
// process) and releases them in reverse acquisition order exactly once.
//
// Every exit path of a job, success, failure, or timeout, runs the same
// Close, so an interrupted encode never strands a partial file or a child
// process. The release counters exist so tests can assert that acquisition
// and release return to baseline after induced failures.
package native

import "sync"

// CloseFunc releases one acquired resource.
type CloseFunc func() error

type entry struct {
	label string
	close CloseFunc
}

// Registry collects per-job cleanup functions. The zero value is not
// usable; construct with NewRegistry.
type Registry struct {
	mu         sync.Mutex
	entries    []entry
	closed     bool
	registered int
	released   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a cleanup function under a short label used in error
// messages. Registering against an already-closed registry releases the
// resource immediately so late arrivals cannot leak.
func (r *Registry) Register(label string, fn CloseFunc) {
	if r == nil || fn == nil {
		return
	}
	r.mu.Lock()
	if r.closed {
		r.registered++
		r.mu.Unlock()
		_ = fn()
		r.mu.Lock()
		r.released++
		r.mu.Unlock()
		return
	}
	r.entries = append(r.entries, entry{label: label, close: fn})
	r.registered++
	r.mu.Unlock()
}

// Close releases all registered resources in reverse order. Later calls
// are no-ops. Every cleanup runs even when an earlier one fails; the first
// failure is returned.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()

	var firstErr error
	for i := len(entries) - 1; i >= 0; i-- {
		if err := entries[i].close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.mu.Lock()
		r.released++
		r.mu.Unlock()
	}
	return firstErr
}

// Outstanding reports how many registered resources have not been released.
func (r *Registry) Outstanding() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered - r.released
}

// Counts returns how many resources were registered and released over the
// registry's lifetime.
func (r *Registry) Counts() (registered, released int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered, r.released
}
