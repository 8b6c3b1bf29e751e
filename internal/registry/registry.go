// Package registry holds the set of player names known for the current match.
//
// The set only grows: the log has no reliable disconnect signal, so a name seen
// once stays valid for disambiguation until the process exits.
package registry

import (
	"sort"
	"sync"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// Registry is an append-only set of player names, safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[model.PlayerName]struct{}
}

// New returns a registry seeded with names.
func New(names ...model.PlayerName) *Registry {
	r := &Registry{names: make(map[model.PlayerName]struct{}, len(names))}
	r.AddAll(names)
	return r
}

// Add inserts name. It returns false for empty or already known names.
func (r *Registry) Add(name model.PlayerName) bool {
	if name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return false
	}
	r.names[name] = struct{}{}
	return true
}

// AddAll inserts every name and returns how many were new.
func (r *Registry) AddAll(names []model.PlayerName) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := r.names[n]; ok {
			continue
		}
		r.names[n] = struct{}{}
		added++
	}
	return added
}

func (r *Registry) Contains(name model.PlayerName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[name]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Names returns a sorted copy of the registry.
func (r *Registry) Names() []model.PlayerName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.PlayerName, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Snapshot freezes the current name set for one parse cycle.
func (r *Registry) Snapshot() *Snapshot {
	return NewSnapshot(r.Names()...)
}

// Snapshot is an immutable view of the registry. Parsing reads it without
// locking; later appends to the Registry are not visible.
type Snapshot struct {
	set    map[model.PlayerName]struct{}
	sorted []model.PlayerName
	// byLength orders names longest first, ties broken lexically.
	byLength []model.PlayerName
}

// NewSnapshot builds a Snapshot directly from names.
func NewSnapshot(names ...model.PlayerName) *Snapshot {
	s := &Snapshot{set: make(map[model.PlayerName]struct{}, len(names))}
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := s.set[n]; ok {
			continue
		}
		s.set[n] = struct{}{}
		s.sorted = append(s.sorted, n)
	}
	sort.Slice(s.sorted, func(i, j int) bool { return s.sorted[i] < s.sorted[j] })
	s.byLength = append([]model.PlayerName(nil), s.sorted...)
	sort.SliceStable(s.byLength, func(i, j int) bool {
		return len(s.byLength[i]) > len(s.byLength[j])
	})
	return s
}

func (s *Snapshot) Contains(name model.PlayerName) bool {
	if s == nil {
		return false
	}
	_, ok := s.set[name]
	return ok
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.sorted)
}

// Sorted returns the names in lexical order. The slice must not be modified.
func (s *Snapshot) Sorted() []model.PlayerName {
	if s == nil {
		return nil
	}
	return s.sorted
}

// LongestFirst returns the names ordered by length descending, then lexically.
// The slice must not be modified.
func (s *Snapshot) LongestFirst() []model.PlayerName {
	if s == nil {
		return nil
	}
	return s.byLength
}
