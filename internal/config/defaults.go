package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Arena: BreakoutArena{
			CellWidth:  10,
			CellHeight: 25,
		},
		Ball: BreakoutBall{
			Size:      50,
			Speed:     6,
			MinSpread: 0.3,
			MaxSpread: 0.8,
		},
		Paddle: BreakoutPaddle{
			Width:  150,
			Height: 25,
			Offset: 50,
			Blend:  1.0 / 30.0,
		},
		Blocks: BreakoutBlocks{
			Rows:   5,
			Width:  150,
			Height: 50,
			Colors: []string{"red", "orange", "yellow", "green", "blue"},
		},
		Scoring: BreakoutScoring{
			RowPoints:   10,
			LostPenalty: 150,
			ClearBonus:  1000,
		},
		Lives: BreakoutLives{
			Hearts: 3,
		},
		Timing: BreakoutTiming{
			CountdownStep: time.Second,
			Countdown:     4 * time.Second,
			Respawn:       2 * time.Second,
			Popup:         time.Second,
			PanelFade:     0.02,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
