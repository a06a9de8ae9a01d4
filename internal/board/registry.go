// Package board implements the interactive board core: the element position
// registry, the pan/marquee pointer state machine, the zoom scale engine,
// and the date axis generator.
package board

import (
	"sync"

	"github.com/mstolbov/crewboard/internal/geom"
)

// Handle exposes the current on-screen extent of a rendered task card, in
// page coordinates. Bounds is read lazily, only when a collision test runs.
type Handle interface {
	Bounds() (geom.Rect, error)
}

// HandleFunc adapts a function to the Handle interface.
type HandleFunc func() (geom.Rect, error)

func (f HandleFunc) Bounds() (geom.Rect, error) { return f() }

// StaticHandle returns a Handle with a fixed extent.
func StaticHandle(r geom.Rect) Handle {
	return HandleFunc(func() (geom.Rect, error) { return r, nil })
}

// Registry maps task ids to position handles. Entries are created when a
// card mounts and removed when it unmounts; nothing is persisted. No bounds
// are computed at registration time.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Handle)}
}

// Register stores a handle keyed by id, overwriting any prior entry.
func (r *Registry) Register(id string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = h
}

// Unregister removes the entry for id, if any.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// All returns a snapshot of the current entries for iteration. No ordering
// is guaranteed.
func (r *Registry) All() map[string]Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Handle, len(r.entries))
	for id, h := range r.entries {
		out[id] = h
	}
	return out
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
