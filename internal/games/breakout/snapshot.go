package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// EntityState is the serializable state of one entity.
type EntityState struct {
	ID     uint64
	Kind   string
	X, Y   float64
	VX, VY float64
}

// Snapshot contains the observable game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick       uint64
	Phase      string
	Score      int
	HeartsLeft int
	Epoch      uint64
	Pending    int // Live timers
	Blocks     int
	Entities   []EntityState
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	entities := w.Registry.Snapshot()
	states := make([]EntityState, 0, len(entities))
	for _, e := range entities {
		states = append(states, EntityState{
			ID:   uint64(e.ID),
			Kind: e.Kind.String(),
			X:    e.Position.X,
			Y:    e.Position.Y,
			VX:   e.Velocity.X,
			VY:   e.Velocity.Y,
		})
	}

	return Snapshot{
		Tick:       w.Timers.Now(),
		Phase:      g.phase.String(),
		Score:      w.Score,
		HeartsLeft: w.HeartsLeft,
		Epoch:      w.Timers.Epoch(),
		Pending:    w.Timers.Pending(),
		Blocks:     w.Registry.Count(engine.KindBlock),
		Entities:   states,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + hashString(snap.Phase)
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HeartsLeft) //#nosec G115 -- hash computation
	h = h*31 + snap.Epoch
	h = h*31 + uint64(snap.Pending) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Blocks)  //#nosec G115 -- hash computation
	for _, e := range snap.Entities {
		h = h*31 + e.ID
		h = h*31 + hashString(e.Kind)
		h = h*31 + math.Float64bits(e.X)
		h = h*31 + math.Float64bits(e.Y)
		h = h*31 + math.Float64bits(e.VX)
		h = h*31 + math.Float64bits(e.VY)
	}
	return h
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
