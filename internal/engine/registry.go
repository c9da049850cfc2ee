package engine

import (
	"iter"
	"slices"
)

// Registry is the insertion-ordered entity collection. Additions and
// removals are staged in a pending change-set and only become visible to
// Snapshot after Commit, so a pass over a snapshot is never disturbed by the
// hooks it runs.
type Registry struct {
	committed []*Entity
	index     map[ID]*Entity
	added     []*Entity
	removed   map[ID]struct{}
	nextID    ID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index:   make(map[ID]*Entity),
		removed: make(map[ID]struct{}),
	}
}

// Add stages an entity for insertion and assigns it a fresh ID.
func (r *Registry) Add(e *Entity) ID {
	r.nextID++
	e.ID = r.nextID
	r.added = append(r.added, e)
	return e.ID
}

// Remove stages the entity for removal. It reports whether the entity was
// live before the call.
func (r *Registry) Remove(id ID) bool {
	if i := slices.IndexFunc(r.added, func(e *Entity) bool { return e.ID == id }); i >= 0 {
		r.added = slices.Delete(r.added, i, i+1)
		return true
	}
	if _, ok := r.index[id]; !ok {
		return false
	}
	if _, gone := r.removed[id]; gone {
		return false
	}
	r.removed[id] = struct{}{}
	return true
}

// RemoveKind stages every live entity of the kind for removal and returns
// how many were removed.
func (r *Registry) RemoveKind(kind Kind) int {
	var ids []ID
	for e := range r.Each(kind) {
		ids = append(ids, e.ID)
	}
	for _, id := range ids {
		r.Remove(id)
	}
	return len(ids)
}

// Clear stages removal of everything.
func (r *Registry) Clear() {
	r.added = nil
	for id := range r.index {
		r.removed[id] = struct{}{}
	}
}

// Commit applies the pending change-set. The previous snapshot slice is left
// untouched.
func (r *Registry) Commit() {
	if len(r.added) == 0 && len(r.removed) == 0 {
		return
	}
	next := make([]*Entity, 0, len(r.committed)-len(r.removed)+len(r.added))
	for _, e := range r.committed {
		if _, gone := r.removed[e.ID]; gone {
			delete(r.index, e.ID)
			continue
		}
		next = append(next, e)
	}
	for _, e := range r.added {
		r.index[e.ID] = e
		next = append(next, e)
	}
	r.committed = next
	r.added = nil
	clear(r.removed)
}

// Snapshot returns the committed entities in insertion order.
// The slice must not be modified and stays stable across later commits.
func (r *Registry) Snapshot() []*Entity {
	return r.committed
}

// Contains reports whether the registry knows the entity: committed
// (even if staged for removal) or staged for insertion.
func (r *Registry) Contains(id ID) bool {
	if _, ok := r.index[id]; ok {
		return true
	}
	return slices.ContainsFunc(r.added, func(e *Entity) bool { return e.ID == id })
}

// Live reports whether the entity is known and not staged for removal.
func (r *Registry) Live(id ID) bool {
	if _, gone := r.removed[id]; gone {
		return false
	}
	return r.Contains(id)
}

// Get returns a live entity by ID.
func (r *Registry) Get(id ID) (*Entity, bool) {
	if !r.Live(id) {
		return nil, false
	}
	if e, ok := r.index[id]; ok {
		return e, true
	}
	i := slices.IndexFunc(r.added, func(e *Entity) bool { return e.ID == id })
	return r.added[i], true
}

// Each yields live entities of the kind, committed first, then staged ones.
func (r *Registry) Each(kind Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range r.committed {
			if e.Kind != kind {
				continue
			}
			if _, gone := r.removed[e.ID]; gone {
				continue
			}
			if !yield(e) {
				return
			}
		}
		for _, e := range r.added {
			if e.Kind == kind && !yield(e) {
				return
			}
		}
	}
}

// Count returns the number of live entities of the kind, pending changes included.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for range r.Each(kind) {
		n++
	}
	return n
}

// Len returns the number of live entities, pending changes included.
func (r *Registry) Len() int {
	return len(r.committed) - len(r.removed) + len(r.added)
}
