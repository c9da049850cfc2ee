package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// placeBlocks fills the top of the arena with rows of blocks. Columns are
// centered horizontally; the leftover width is split between both sides.
// Colors cycle per row and the top row is worth the most.
func (r *rules) placeBlocks(w *engine.World, rows int) int {
	cw, ch := r.cfg.Blocks.Width, r.cfg.Blocks.Height
	hw, hh := w.Arena.HalfWidth, w.Arena.HalfHeight

	startX := -hw + cw/2 + math.Mod(w.Arena.Width, cw)/2
	top := hh - float64(rows)*ch/6

	placed := 0
	for row := 0; row < rows; row++ {
		color := r.colors[row%len(r.colors)]
		points := r.cfg.Scoring.RowPoints * (rows - row)
		y := top - float64(row)*ch
		for x := startX; x < hw; x += cw {
			w.Spawn(r.block(core.Vec(x, y), color, points))
			placed++
		}
	}
	return placed
}

// gridBottom returns the lower edge of the lowest block row.
func (r *rules) gridBottom(w *engine.World, rows int) float64 {
	ch := r.cfg.Blocks.Height
	top := w.Arena.HalfHeight - float64(rows)*ch/6
	return top - float64(rows-1)*ch - ch/2
}

// ballSpawn returns the point midway between the paddle top and the grid.
func (r *rules) ballSpawn(w *engine.World, rows int) core.Vector2 {
	paddleTop := -w.Arena.HalfHeight + r.cfg.Paddle.Offset + r.cfg.Paddle.Height/2
	return core.Vec(0, (paddleTop+r.gridBottom(w, rows))/2)
}

// launchVelocity picks a random downward launch: full speed on Y and a
// random share of it on X, to either side.
func (r *rules) launchVelocity(w *engine.World, speed float64) core.Vector2 {
	lo, hi := r.cfg.Ball.MinSpread, r.cfg.Ball.MaxSpread
	vx := speed * (lo + w.Rand.Float64()*(hi-lo))
	if w.Rand.IntN(2) == 0 {
		vx = -vx
	}
	return core.Vec(vx, -speed)
}
