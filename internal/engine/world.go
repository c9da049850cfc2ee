package engine

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Arena is the playfield in simulation units, centered on the origin.
type Arena struct {
	Width, Height         float64
	HalfWidth, HalfHeight float64
}

// NewArena derives half extents from the full size.
func NewArena(width, height float64) Arena {
	return Arena{
		Width:      width,
		Height:     height,
		HalfWidth:  width / 2,
		HalfHeight: height / 2,
	}
}

// EventKind identifies a message a hook sends to the controller.
type EventKind int

const (
	EventBallLost EventKind = iota
	EventRoundCleared
	EventRestartRequested
)

func (k EventKind) String() string {
	switch k {
	case EventBallLost:
		return "ball-lost"
	case EventRoundCleared:
		return "round-cleared"
	case EventRestartRequested:
		return "restart-requested"
	default:
		return "unknown"
	}
}

// Event is queued by hooks and drained by the game controller after a pass.
type Event struct {
	Kind   EventKind
	Source ID
}

// World is the explicit mutable context handed to every hook: the registry,
// timers, arena, pointer, score and lives.
type World struct {
	Registry *Registry
	Timers   *Timers
	Arena    Arena
	Pointer  core.Vector2

	Score      int
	HeartsLeft int
	HeartCount int

	TickRate int
	Rand     *rand.Rand
	Log      *log.Logger

	// Strict turns invariant violations into panics.
	Strict bool

	events []Event
}

// NewWorld creates an empty world. A nil logger discards output.
func NewWorld(width, height float64, tickRate int, seed uint64, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return &World{
		Registry: NewRegistry(),
		Timers:   &Timers{},
		Arena:    NewArena(width, height),
		TickRate: tickRate,
		Rand:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Log:      logger,
	}
}

// Spawn adds the entity and runs its init hook once.
func (w *World) Spawn(e *Entity) *Entity {
	w.Registry.Add(e)
	if e.Hooks.Init != nil {
		e.Hooks.Init(w, e)
	}
	return e
}

// Remove stages an entity for removal.
func (w *World) Remove(id ID) bool {
	return w.Registry.Remove(id)
}

// After schedules a one-shot action in ticks.
func (w *World) After(ticks int, fn func(w *World)) {
	w.Timers.After(ticks, fn)
}

// Emit queues an event for the controller.
func (w *World) Emit(kind EventKind, source ID) {
	w.events = append(w.events, Event{Kind: kind, Source: source})
}

// Drain returns and clears the queued events.
func (w *World) Drain() []Event {
	ev := w.events
	w.events = nil
	return ev
}

// Invariant checks a programming-error condition. A violation panics when
// the world is strict; otherwise it is logged and the caller should no-op.
func (w *World) Invariant(ok bool, msg string, keyvals ...any) bool {
	if ok {
		return true
	}
	if w.Strict {
		panic(fmt.Sprintf("engine: invariant violated: %s %v", msg, keyvals))
	}
	w.Log.Error("invariant violated: "+msg, keyvals...)
	return false
}

// Resize recomputes the arena half extents. Entity positions are untouched.
func (w *World) Resize(width, height float64) {
	w.Arena = NewArena(width, height)
}

// SetPointer records the latest pointer position in simulation coordinates.
func (w *World) SetPointer(x, y float64) {
	w.Pointer = core.Vec(x, y)
}

// Click forwards a click to every live entity with a click hook, in
// registry order. It returns how many hooks ran.
func (w *World) Click() int {
	n := 0
	for _, e := range w.Registry.Snapshot() {
		if e.Hooks.Click == nil || !w.Registry.Live(e.ID) {
			continue
		}
		e.Hooks.Click(w, e)
		n++
	}
	return n
}
