// Package config provides YAML-based game configuration loading and
// difficulty management for the breakout simulation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// BreakoutConfig contains all configuration for the Breakout game.
// Lengths are in simulation units; speeds are units per tick.
type BreakoutConfig struct {
	Arena      BreakoutArena    `yaml:"arena"`
	Ball       BreakoutBall     `yaml:"ball"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Blocks     BreakoutBlocks   `yaml:"blocks"`
	Scoring    BreakoutScoring  `yaml:"scoring"`
	Lives      BreakoutLives    `yaml:"lives"`
	Timing     BreakoutTiming   `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutArena maps terminal cells onto simulation units.
type BreakoutArena struct {
	CellWidth  float64 `yaml:"cell_width"`  // Units per terminal column
	CellHeight float64 `yaml:"cell_height"` // Units per terminal row
}

// BreakoutBall defines the ball.
type BreakoutBall struct {
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"`
	MinSpread    float64 `yaml:"min_spread"` // Share of speed given to X at launch
	MaxSpread    float64 `yaml:"max_spread"`
	AngledPaddle bool    `yaml:"angled_paddle"` // Offset-based deflection off the paddle, off by default
}

// BreakoutPaddle defines the paddle.
type BreakoutPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Offset float64 `yaml:"offset"` // Distance of the paddle center above the bottom edge
	Blend  float64 `yaml:"blend"`  // Pointer tracking blend factor per tick
}

// BreakoutBlocks defines the block grid.
type BreakoutBlocks struct {
	Rows   int      `yaml:"rows"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Colors []string `yaml:"colors"`
}

// BreakoutScoring defines point values.
type BreakoutScoring struct {
	RowPoints   int `yaml:"row_points"`   // Points per row counted from the bottom row
	LostPenalty int `yaml:"lost_penalty"` // Deducted when the ball leaves the arena
	ClearBonus  int `yaml:"clear_bonus"`  // Awarded when the last block is destroyed
}

// BreakoutLives defines the heart counter.
type BreakoutLives struct {
	Hearts int `yaml:"hearts"`
}

// BreakoutTiming defines phase and popup delays.
type BreakoutTiming struct {
	CountdownStep time.Duration `yaml:"countdown_step"`
	Countdown     time.Duration `yaml:"countdown"`
	Respawn       time.Duration `yaml:"respawn"`
	Popup         time.Duration `yaml:"popup"`
	PanelFade     float64       `yaml:"panel_fade"` // Opacity added per tick
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks values the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Arena.CellWidth > 0 && c.Arena.CellHeight > 0, "arena cell size must be positive")
	check(c.Ball.Size >= 0, "ball.size %v is negative", c.Ball.Size)
	check(c.Ball.Speed > 0, "ball.speed must be positive")
	check(c.Ball.MinSpread >= 0 && c.Ball.MinSpread <= c.Ball.MaxSpread, "ball spread [%v, %v] is not a range", c.Ball.MinSpread, c.Ball.MaxSpread)
	check(c.Paddle.Width >= 0 && c.Paddle.Height >= 0, "paddle size is negative")
	check(c.Paddle.Blend > 0 && c.Paddle.Blend <= 1, "paddle.blend %v outside (0, 1]", c.Paddle.Blend)
	check(c.Blocks.Rows > 0, "blocks.rows must be positive")
	check(c.Blocks.Width > 0 && c.Blocks.Height > 0, "block size must be positive")
	check(len(c.Blocks.Colors) > 0, "blocks.colors is empty")
	for _, name := range c.Blocks.Colors {
		_, err := core.ParseColor(name)
		check(err == nil, "blocks.colors: unknown color %q", name)
	}
	check(c.Lives.Hearts >= 0, "lives.hearts is negative")
	check(c.Timing.Countdown > 0 && c.Timing.CountdownStep > 0, "countdown timing must be positive")
	check(c.Timing.Respawn > 0 && c.Timing.Popup > 0, "respawn and popup timing must be positive")
	check(c.Timing.PanelFade > 0, "timing.panel_fade must be positive")

	return errors.Join(errs...)
}

// BlockColors resolves the configured color names, skipping unknown ones.
func (c BreakoutConfig) BlockColors() []core.Color {
	out := make([]core.Color, 0, len(c.Blocks.Colors))
	for _, name := range c.Blocks.Colors {
		if col, err := core.ParseColor(name); err == nil {
			out = append(out, col)
		}
	}
	return out
}
