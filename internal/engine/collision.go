package engine

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Sides records, for one participant, where the other box lies entirely
// beyond one of its edges. On a real overlap every flag is false.
type Sides struct {
	Left   bool // other is fully left
	Right  bool // other is fully right
	Top    bool // other is fully above
	Bottom bool // other is fully below
}

// Vertical reports a top or bottom classification.
func (s Sides) Vertical() bool {
	return s.Top || s.Bottom
}

// Horizontal reports a left or right classification.
func (s Sides) Horizontal() bool {
	return s.Left || s.Right
}

// Separated reports whether any separation flag is set.
func (s Sides) Separated() bool {
	return s.Vertical() || s.Horizontal()
}

// Separation classifies b relative to a.
func Separation(a, b core.Extents) Sides {
	return Sides{
		Right:  b.Left > a.Right,
		Left:   b.Right < a.Left,
		Bottom: b.Top < a.Bottom,
		Top:    b.Bottom > a.Top,
	}
}

// Overlap reports whether two boxes intersect. Touching edges count.
func Overlap(a, b core.Extents) bool {
	return !Separation(a, b).Separated()
}

// Hit is the transient record of one overlap. Collider is the entity whose
// scan found it, Collidee the candidate.
type Hit struct {
	Collider      *Entity
	Collidee      *Entity
	ColliderSides Sides
	CollideeSides Sides
}

// Other returns the participant that is not self.
func (h Hit) Other(self *Entity) *Entity {
	if h.Collider == self {
		return h.Collidee
	}
	return h.Collider
}

// SidesOf returns the classification from self's point of view.
func (h Hit) SidesOf(self *Entity) Sides {
	if h.Collider == self {
		return h.ColliderSides
	}
	return h.CollideeSides
}

// Detect tests the initiator against every other boxed entity of the
// current snapshot in registry order and runs the collidee's collision hook
// followed by the initiator's for each overlap. The scan stops early once a
// hook has removed either participant. It returns the number of hits.
func Detect(w *World, initiator *Entity) int {
	a, ok := initiator.Extents()
	if !w.Invariant(ok, "collision scan on entity without a box", "id", initiator.ID, "kind", initiator.Kind) {
		return 0
	}

	hits := 0
	for _, other := range w.Registry.Snapshot() {
		if other == initiator || other.Box == nil || !w.Registry.Live(other.ID) {
			continue
		}
		b, _ := other.Extents()
		sep := Separation(a, b)
		if sep.Separated() {
			continue
		}

		hit := Hit{
			Collider:      initiator,
			Collidee:      other,
			ColliderSides: sep,
			CollideeSides: Separation(b, a),
		}
		hits++
		if other.Hooks.Collision != nil {
			other.Hooks.Collision(w, other, hit)
		}
		if initiator.Hooks.Collision != nil {
			initiator.Hooks.Collision(w, initiator, hit)
		}

		if !w.Registry.Live(initiator.ID) || !w.Registry.Live(other.ID) {
			break
		}
		// The initiator's hook may have moved it.
		a, _ = initiator.Extents()
	}
	return hits
}
