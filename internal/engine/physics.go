package engine

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// DefaultTrackBlend is the share of the remaining distance to the pointer a
// tracking entity covers per tick.
const DefaultTrackBlend = 1.0 / 30.0

// Edge is a bit set of arena edges touched by a mesh point.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has reports whether all bits of o are set.
func (e Edge) Has(o Edge) bool {
	return e&o == o
}

// Integrate runs one physics pass over the current snapshot: each live
// entity moves by its velocity and then runs its physics hook. Changes
// staged by hooks are committed once the pass is complete.
func Integrate(w *World) {
	for _, e := range w.Registry.Snapshot() {
		if !w.Registry.Live(e.ID) {
			continue
		}
		e.Position = e.Position.Add(e.Velocity)
		if e.Hooks.Physics != nil {
			e.Hooks.Physics(w, e)
		}
	}
	w.Registry.Commit()
}

// WallBounce samples the entity's mesh against the arena edges. The first
// point touching an edge decides the outcome: left and right edges point
// velocity.X back into the arena, the top edge points velocity.Y down, and
// the bottom edge is only reported. Entities without a box never bounce.
func WallBounce(w *World, e *Entity) Edge {
	if e.Box == nil {
		return 0
	}
	hw, hh := w.Arena.HalfWidth, w.Arena.HalfHeight
	for p := range e.Box.Mesh(e.Position) {
		var edges Edge
		if p.X >= hw {
			edges |= EdgeRight
		}
		if p.X <= -hw {
			edges |= EdgeLeft
		}
		if p.Y >= hh {
			edges |= EdgeTop
		}
		if p.Y <= -hh {
			edges |= EdgeBottom
		}
		if edges == 0 {
			continue
		}

		if edges.Has(EdgeRight) {
			e.Velocity.X = -math.Abs(e.Velocity.X)
		}
		if edges.Has(EdgeLeft) {
			e.Velocity.X = math.Abs(e.Velocity.X)
		}
		if edges.Has(EdgeTop) {
			e.Velocity.Y = -math.Abs(e.Velocity.Y)
		}
		return edges
	}
	return 0
}

// TrackPointer eases the entity's X toward the pointer X by blend of the
// remaining distance. Y is left alone.
func TrackPointer(w *World, e *Entity, blend float64) error {
	x, err := core.LerpScalar(e.Position.X, w.Pointer.X, blend)
	if err != nil {
		return err
	}
	e.Position.X = x
	return nil
}
