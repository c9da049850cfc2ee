// Package breakout implements the block-breaker round controller on top of
// the entity engine: entity factories and behaviour hooks, the block grid,
// and the countdown/playing/ball-lost/game-over state machine.
package breakout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives phase transitions and invariant violations.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger routes game logs. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the Breakout round controller. It exclusively owns the
// entity world; hosts talk to it only through the registry.Game methods.
type Game struct {
	id, title string
	rowsOver  int // Overrides blocks.rows when non-zero

	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	rules      *rules
	difficulty *config.DifficultyManager
	world      *engine.World
	phase      Phase

	proj           Projection
	showBoxes      bool
	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a Breakout game using the configured row count.
func New() *Game {
	return &Game{id: "breakout", title: "Breakout"}
}

// NewTall creates a Breakout variant with eight block rows.
func NewTall() *Game {
	return &Game{id: "breakout_tall", title: "Breakout (Tall)", rowsOver: 8}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultBreakoutConfig()
	}
	config.ApplyBreakoutPreset(&cfg, difficultyPreset)
	g.ResetWith(runtime, cfg)
}

// ResetWith starts a new game from an explicit configuration.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BreakoutConfig) {
	cfg.Blocks.Rows = g.BlockRows(cfg)
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.cfg = cfg
	g.rules = newRules(cfg, runtime.TickRate)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.minScreenW = 40
	g.minScreenH = 12
	g.proj = newProjection(cfg.Arena, runtime.ScreenW, runtime.ScreenH)
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	g.world = engine.NewWorld(g.proj.ArenaWidth(), g.proj.ArenaHeight(), runtime.TickRate, uint64(runtime.Seed), logger) //#nosec G115 -- seed bits are reused as is
	g.world.Strict = runtime.Strict
	g.world.HeartCount = cfg.Lives.Hearts
	g.world.HeartsLeft = cfg.Lives.Hearts
	g.world.SetPointer(0, 0)

	g.enterCountdown()
	g.world.Registry.Commit()
}

// BlockRows returns the number of block rows this variant plays with.
func (g *Game) BlockRows(cfg config.BreakoutConfig) int {
	if g.rowsOver > 0 {
		return g.rowsOver
	}
	return cfg.Blocks.Rows
}

func (g *Game) rows() int {
	return g.cfg.Blocks.Rows
}

// Step advances the simulation by one tick: due timers fire, every entity
// integrates and runs its hooks, then the controller reacts to the events
// the hooks sent.
func (g *Game) Step() core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	w := g.world
	w.Timers.Advance(w)
	w.Registry.Commit()
	engine.Integrate(w)
	g.handleEvents()
	w.Registry.Commit()

	return core.StepResult{State: g.State()}
}

// SetPointer records the pointer in simulation coordinates.
func (g *Game) SetPointer(x, y float64) {
	g.world.SetPointer(x, y)
}

// Click forwards a click to every click hook and applies the outcome at once.
func (g *Game) Click() {
	g.world.Click()
	g.handleEvents()
	g.world.Registry.Commit()
}

// Resize adapts the arena to a new terminal size. Entities keep their positions.
func (g *Game) Resize(cols, rows int) {
	g.runtime.ScreenW, g.runtime.ScreenH = cols, rows
	g.proj = newProjection(g.cfg.Arena, cols, rows)
	g.screenTooSmall = cols < g.minScreenW || rows < g.minScreenH
	g.world.Resize(g.proj.ArenaWidth(), g.proj.ArenaHeight())
}

// ScreenToWorld maps a terminal cell to simulation coordinates.
func (g *Game) ScreenToWorld(col, row int) core.Vector2 {
	return g.proj.ToWorld(col, row)
}

// SetShowBoxes toggles the bounding box overlay.
func (g *Game) SetShowBoxes(on bool) {
	g.showBoxes = on
}

// Entities returns the committed registry snapshot.
func (g *Game) Entities() []*engine.Entity {
	return g.world.Registry.Snapshot()
}

// World exposes the simulation context, for tests and tooling.
func (g *Game) World() *engine.World {
	return g.world
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:      g.world.Score,
		HeartsLeft: g.world.HeartsLeft,
		Phase:      g.phase.String(),
		GameOver:   g.phase == PhaseGameOver,
	}
}

// Register the games with the registry
func init() {
	registry.Register("breakout", func() registry.Game {
		return New()
	})
	registry.Register("breakout_tall", func() registry.Game {
		return NewTall()
	})
}
