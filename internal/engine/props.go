package engine

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Props is the kind-specific property bag of an entity. The set of variants
// is closed; use PropsOf to read one with a presence check.
type Props interface {
	props()
}

// BallProps describes a ball.
type BallProps struct {
	Radius float64
}

// BlockProps describes a destructible block.
type BlockProps struct {
	Color  core.Color
	Points int
}

// PaddleProps describes the player paddle.
type PaddleProps struct {
	Width float64
}

// ScoreboardProps mirrors the score for display.
type ScoreboardProps struct {
	Score int
}

// LifeCounterProps mirrors lives for display.
type LifeCounterProps struct {
	HeartsLeft int
	HeartCount int
}

// BannerProps is the text of a countdown or out-of-bounds banner.
type BannerProps struct {
	Text string
}

// PopupProps is a transient floating label.
type PopupProps struct {
	Text  string
	Color core.Color
}

// PanelProps is the game-over panel. Restart is the clickable region in
// simulation coordinates.
type PanelProps struct {
	Score   int
	Opacity float64
	Restart core.Extents
}

func (BallProps) props()        {}
func (BlockProps) props()       {}
func (PaddleProps) props()      {}
func (ScoreboardProps) props()  {}
func (LifeCounterProps) props() {}
func (BannerProps) props()      {}
func (PopupProps) props()       {}
func (PanelProps) props()       {}

// PropsOf returns the entity's properties as T.
// ok is false when the entity carries a different variant or none.
func PropsOf[T Props](e *Entity) (T, bool) {
	p, ok := e.Props.(T)
	return p, ok
}
