// Package engine implements the entity update loop: an insertion-ordered
// entity registry with deferred mutation, AABB collision detection with
// side classification, Euler integration with reusable physics behaviours,
// and epoch-guarded one-shot timers. It knows nothing about a specific game;
// behaviour lives in per-entity hooks that receive an explicit *World.
package engine

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// ID identifies an entity within a registry. Zero is never assigned.
type ID uint64

// Kind tags an entity for filtering and removal. It is never used for dispatch.
type Kind int

const (
	KindBall Kind = iota
	KindBlock
	KindPaddle
	KindScoreboard
	KindLifeCounter
	KindCountdownBanner
	KindOutOfBoundsBanner
	KindPopup
	KindGameOverPanel
)

// String returns the kind name used in logs and snapshots.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindBlock:
		return "block"
	case KindPaddle:
		return "paddle"
	case KindScoreboard:
		return "scoreboard"
	case KindLifeCounter:
		return "life-counter"
	case KindCountdownBanner:
		return "countdown-banner"
	case KindOutOfBoundsBanner:
		return "out-of-bounds-banner"
	case KindPopup:
		return "points-popup"
	case KindGameOverPanel:
		return "game-over-panel"
	default:
		return "unknown"
	}
}

// Hooks are the per-entity behaviours. Any of them may be nil.
type Hooks struct {
	// Init runs exactly once when the entity is spawned, after it has an ID.
	// It may schedule timers and spawn siblings.
	Init func(w *World, self *Entity)

	// Physics runs once per tick after position integration.
	Physics func(w *World, self *Entity)

	// Collision runs once per detected overlap, whichever side self is on.
	Collision func(w *World, self *Entity, hit Hit)

	// Click runs on every pointer click. Hit-testing is up to the hook.
	Click func(w *World, self *Entity)
}

// Entity is the single polymorphic unit of simulation.
type Entity struct {
	ID       ID
	Kind     Kind
	Position core.Vector2
	Velocity core.Vector2

	// Box is nil for entities that only take part in rendering and state.
	Box *core.BoundingBox

	Props Props
	Hooks Hooks
}

// Option configures an entity at construction.
type Option func(*Entity)

// At places the entity.
func At(pos core.Vector2) Option {
	return func(e *Entity) { e.Position = pos }
}

// Moving sets the initial velocity.
func Moving(vel core.Vector2) Option {
	return func(e *Entity) { e.Velocity = vel }
}

// WithBox gives the entity a bounding box.
func WithBox(box core.BoundingBox) Option {
	return func(e *Entity) {
		b := box
		e.Box = &b
	}
}

// WithProps replaces the kind-specific property bag.
func WithProps(p Props) Option {
	return func(e *Entity) { e.Props = p }
}

// WithHooks sets the behaviour hooks.
func WithHooks(h Hooks) Option {
	return func(e *Entity) { e.Hooks = h }
}

// New builds an entity of the given kind. The entity has no ID until it is
// spawned into a world.
func New(kind Kind, opts ...Option) *Entity {
	e := &Entity{Kind: kind}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extents returns the entity's box edges at its current position.
// ok is false when the entity has no box.
func (e *Entity) Extents() (ext core.Extents, ok bool) {
	if e.Box == nil {
		return core.Extents{}, false
	}
	return e.Box.Extents(e.Position), true
}
