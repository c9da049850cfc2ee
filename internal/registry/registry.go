// Package registry provides a global registry for game variants.
// Variants register themselves in init() functions, allowing the hosts
// (terminal, SSH, headless simulate) to discover and instantiate them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// Game is the boundary between a simulation and its host.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The host drives ticks, relays pointer input and paints the screen buffer.
type Game interface {
	// ID returns a unique identifier for this variant (e.g., "breakout").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh game for the given terminal size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step performs exactly one physics pass. The host renders afterwards.
	Step() core.StepResult

	// SetPointer records the pointer in simulation coordinates.
	SetPointer(x, y float64)

	// Click forwards a pointer click to every entity with a click hook.
	Click()

	// Resize adapts the arena to a new terminal size in cells.
	// Entity positions are not rescaled.
	Resize(cols, rows int)

	// ScreenToWorld maps a terminal cell to simulation coordinates.
	ScreenToWorld(col, row int) core.Vector2

	// SetShowBoxes toggles the bounding box overlay.
	SetShowBoxes(on bool)

	// Render draws the current entities into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// Entities returns a read-only snapshot of the registry.
	Entities() []*engine.Entity

	// State returns score, lives and phase.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
