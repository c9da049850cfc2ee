package breakout

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// 80x25 cells with one HUD row gives an 800x600 arena.
func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 7, Strict: true}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.ResetWith(testRuntime(), config.DefaultBreakoutConfig())
	return g
}

func startPlaying(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; g.Phase() != PhasePlaying; i++ {
		require.Less(t, i, 1000, "countdown never finished")
		g.Step()
	}
}

func all(g *Game, kind engine.Kind) []*engine.Entity {
	var out []*engine.Entity
	for e := range g.World().Registry.Each(kind) {
		out = append(out, e)
	}
	return out
}

func only(t *testing.T, g *Game, kind engine.Kind) *engine.Entity {
	t.Helper()
	found := all(g, kind)
	require.Len(t, found, 1, "expected exactly one %s", kind)
	return found[0]
}

// lowestBlock returns a block from the bottom row, which has nothing below it.
func lowestBlock(t *testing.T, g *Game) *engine.Entity {
	t.Helper()
	blocks := all(g, engine.KindBlock)
	require.NotEmpty(t, blocks)
	low := blocks[0]
	for _, b := range blocks {
		if b.Position.Y < low.Position.Y {
			low = b
		}
	}
	return low
}

// aimAt puts the ball just under the block, overlapping it, moving up.
func aimAt(t *testing.T, g *Game, block *engine.Entity) *engine.Entity {
	t.Helper()
	ball := only(t, g, engine.KindBall)
	ball.Position = block.Position.Add(core.Vec(0, -41))
	ball.Velocity = core.Vec(0, 1)
	return ball
}

// dropBall sends the ball out through the bottom edge on the next tick.
func dropBall(t *testing.T, g *Game) *engine.Entity {
	t.Helper()
	ball := only(t, g, engine.KindBall)
	ball.Position = core.Vec(300, -g.World().Arena.HalfHeight+25)
	ball.Velocity = core.Vec(0, -5)
	return ball
}

func TestArenaSize(t *testing.T) {
	g := newTestGame(t)
	assert.Equal(t, 400.0, g.World().Arena.HalfWidth)
	assert.Equal(t, 300.0, g.World().Arena.HalfHeight)
}

func TestCountdownSequence(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, PhaseCountdown, g.Phase())
	banner := only(t, g, engine.KindCountdownBanner)
	assert.Equal(t, 1, g.World().Registry.Len())

	label := func() string {
		p, ok := engine.PropsOf[engine.BannerProps](banner)
		require.True(t, ok)
		return p.Text
	}

	assert.Equal(t, "3", label())
	steps := 0
	advance := func(to int) {
		for ; steps < to; steps++ {
			g.Step()
		}
	}
	advance(59)
	assert.Equal(t, "3", label())
	advance(60)
	assert.Equal(t, "2", label())
	advance(120)
	assert.Equal(t, "1", label())
	advance(180)
	assert.Equal(t, "Start!", label())
	advance(239)
	assert.Equal(t, PhaseCountdown, g.Phase())

	advance(240)
	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Empty(t, all(g, engine.KindCountdownBanner))
	assert.Len(t, all(g, engine.KindScoreboard), 1)
	assert.Len(t, all(g, engine.KindLifeCounter), 1)
	assert.Len(t, all(g, engine.KindPaddle), 1)
	assert.Len(t, all(g, engine.KindBall), 1)
	assert.Len(t, all(g, engine.KindBlock), 25, "five rows of five columns in 800 units")
}

func TestGridLayout(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)

	var ys []float64
	rows := map[float64][]*engine.Entity{}
	for _, b := range all(g, engine.KindBlock) {
		if _, seen := rows[b.Position.Y]; !seen {
			ys = append(ys, b.Position.Y)
		}
		rows[b.Position.Y] = append(rows[b.Position.Y], b)
	}
	require.Len(t, ys, 5)
	assert.InDelta(t, 300-250/6.0, ys[0], 1e-9)

	colors := []core.Color{core.ColorRed, core.ColorOrange, core.ColorYellow, core.ColorGreen, core.ColorBlue}
	for row, y := range ys {
		assert.InDelta(t, ys[0]-float64(row)*50, y, 1e-9)
		blocks := rows[y]
		require.Len(t, blocks, 5, "row %d", row)
		for i, b := range blocks {
			assert.Equal(t, -300+float64(i)*150, b.Position.X)
			p, ok := engine.PropsOf[engine.BlockProps](b)
			require.True(t, ok)
			assert.Equal(t, colors[row], p.Color)
			assert.Equal(t, 10*(5-row), p.Points)
		}
	}
}

func TestBallSpawnsBetweenPaddleAndGrid(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)

	ball := only(t, g, engine.KindBall)
	paddle := only(t, g, engine.KindPaddle)
	low := lowestBlock(t, g)

	assert.Greater(t, ball.Position.Y, paddle.Position.Y)
	assert.Less(t, ball.Position.Y, low.Position.Y)
	assert.Less(t, ball.Velocity.Y, 0.0, "ball launches downward")
	spread := math.Abs(ball.Velocity.X) / math.Abs(ball.Velocity.Y)
	assert.GreaterOrEqual(t, spread, 0.3)
	assert.LessOrEqual(t, spread, 0.8)
}

func TestBlockDestruction(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()

	before := w.Registry.Count(engine.KindBlock)
	block := lowestBlock(t, g)
	props, _ := engine.PropsOf[engine.BlockProps](block)
	ball := aimAt(t, g, block)

	g.Step()

	assert.Equal(t, before-1, w.Registry.Count(engine.KindBlock))
	assert.False(t, w.Registry.Contains(block.ID))
	assert.Equal(t, props.Points, w.Score)
	assert.Equal(t, 10, props.Points)

	popup := only(t, g, engine.KindPopup)
	pp, _ := engine.PropsOf[engine.PopupProps](popup)
	assert.Equal(t, "+10", pp.Text)
	assert.Equal(t, props.Color, pp.Color)

	assert.Less(t, ball.Velocity.Y, 0.0, "ball rebounds away from the block")
	assert.Equal(t, PhasePlaying, g.Phase())
}

func TestPopupExpires(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	aimAt(t, g, lowestBlock(t, g))
	g.Step()
	require.Len(t, all(g, engine.KindPopup), 1)

	ball := only(t, g, engine.KindBall)
	ball.Position = core.Vec(0, -100)
	ball.Velocity = core.Vec(0, 0)
	for range 60 {
		g.Step()
	}
	assert.Empty(t, all(g, engine.KindPopup))
}

func keepOnlyBlock(g *Game, keep *engine.Entity) {
	w := g.World()
	for _, b := range all(g, engine.KindBlock) {
		if b != keep {
			w.Remove(b.ID)
		}
	}
	w.Registry.Commit()
}

func TestLastBlockClearsRound(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()

	full := w.Registry.Count(engine.KindBlock)
	target := lowestBlock(t, g)
	keepOnlyBlock(g, target)
	require.Equal(t, 1, w.Registry.Count(engine.KindBlock))

	w.HeartsLeft = 1
	oldBall := aimAt(t, g, target)

	g.Step()

	assert.Equal(t, full, w.Registry.Count(engine.KindBlock), "grid regenerated with the same row count")
	assert.False(t, w.Registry.Contains(oldBall.ID))
	newBall := only(t, g, engine.KindBall)
	assert.NotEqual(t, oldBall.ID, newBall.ID)
	assert.Equal(t, 10+1000, w.Score)
	assert.Equal(t, 2, w.HeartsLeft)

	var texts []string
	for _, p := range all(g, engine.KindPopup) {
		pp, _ := engine.PropsOf[engine.PopupProps](p)
		texts = append(texts, pp.Text)
	}
	assert.ElementsMatch(t, []string{"+10", "+1000"}, texts)
	assert.Equal(t, PhasePlaying, g.Phase())
}

func TestLastBlockAtFullHearts(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()

	target := lowestBlock(t, g)
	keepOnlyBlock(g, target)
	require.Equal(t, w.HeartCount, w.HeartsLeft)
	aimAt(t, g, target)

	g.Step()

	assert.Equal(t, w.HeartCount, w.HeartsLeft, "hearts never exceed the maximum")
	assert.Equal(t, 1010, w.Score)
}

func TestBallLostWithHeartsLeft(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	w.HeartsLeft = 2
	dropBall(t, g)

	g.Step()

	assert.Equal(t, PhaseBallLost, g.Phase())
	assert.Equal(t, 1, w.HeartsLeft)
	assert.Equal(t, -150, w.Score, "penalty may take the score below zero")
	assert.Empty(t, all(g, engine.KindBall))
	assert.Len(t, all(g, engine.KindOutOfBoundsBanner), 1)

	respawn := g.rules.respawnTicks
	for range respawn - 1 {
		g.Step()
	}
	assert.Equal(t, PhaseBallLost, g.Phase())
	assert.Empty(t, all(g, engine.KindBall))

	g.Step()
	assert.Equal(t, PhasePlaying, g.Phase())
	assert.Len(t, all(g, engine.KindBall), 1, "exactly one ball respawned")
	assert.Empty(t, all(g, engine.KindOutOfBoundsBanner))
	assert.Equal(t, 1, w.HeartsLeft)
}

func TestBallLostWithoutHearts(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	w.Score = 500
	w.HeartsLeft = 0
	dropBall(t, g)

	g.Step()

	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 350, w.Score)
	assert.Equal(t, 0, w.HeartsLeft)
	assert.Zero(t, w.Timers.Pending(), "no respawn scheduled")

	panel := only(t, g, engine.KindGameOverPanel)
	assert.Equal(t, 1, w.Registry.Len(), "registry holds only the panel")
	pp, _ := engine.PropsOf[engine.PanelProps](panel)
	assert.Equal(t, 350, pp.Score)

	for range 300 {
		g.Step()
	}
	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.Empty(t, all(g, engine.KindBall))
	pp, _ = engine.PropsOf[engine.PanelProps](panel)
	assert.Equal(t, 1.0, pp.Opacity, "panel fades in fully")
}

func TestHeartsNeverGoNegative(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	w.HeartsLeft = 1

	dropBall(t, g)
	g.Step()
	require.Equal(t, 0, w.HeartsLeft)
	for g.Phase() != PhasePlaying {
		g.Step()
	}

	dropBall(t, g)
	g.Step()
	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.Equal(t, 0, w.HeartsLeft)
	assert.Equal(t, -300, w.Score)
}

func TestStaleRespawnAfterGameOver(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	w.HeartsLeft = 2
	dropBall(t, g)
	g.Step()
	require.Equal(t, PhaseBallLost, g.Phase())

	g.gameOver()
	w.Registry.Commit()
	for range 2 * g.rules.respawnTicks {
		g.Step()
	}

	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.Empty(t, all(g, engine.KindBall))
}

func gameOverNow(t *testing.T, g *Game) *engine.Entity {
	t.Helper()
	startPlaying(t, g)
	g.World().HeartsLeft = 0
	dropBall(t, g)
	g.Step()
	require.Equal(t, PhaseGameOver, g.Phase())
	return only(t, g, engine.KindGameOverPanel)
}

func TestRestartByClick(t *testing.T) {
	g := newTestGame(t)
	panel := gameOverNow(t, g)
	w := g.World()
	pp, _ := engine.PropsOf[engine.PanelProps](panel)

	// A click outside the button does nothing.
	g.SetPointer(pp.Restart.Right+10, pp.Restart.Top+10)
	g.Click()
	assert.Equal(t, PhaseGameOver, g.Phase())

	g.SetPointer((pp.Restart.Left+pp.Restart.Right)/2, (pp.Restart.Top+pp.Restart.Bottom)/2)
	g.Click()

	assert.Equal(t, PhaseCountdown, g.Phase())
	assert.Equal(t, 0, w.Score)
	assert.Equal(t, w.HeartCount, w.HeartsLeft)
	only(t, g, engine.KindCountdownBanner)
	assert.Equal(t, 1, w.Registry.Len())

	startPlaying(t, g)
	assert.Len(t, all(g, engine.KindBall), 1)
}

func TestRestartButtonMapsFromScreen(t *testing.T) {
	g := newTestGame(t)
	panel := gameOverNow(t, g)
	pp, _ := engine.PropsOf[engine.PanelProps](panel)

	c0, c1, r0, _ := g.proj.cellSpan(pp.Restart)
	p := g.ScreenToWorld((c0+c1)/2, r0)
	g.SetPointer(p.X, p.Y)
	g.Click()

	assert.Equal(t, PhaseCountdown, g.Phase())
}

func TestCollisionWithUnknownEntity(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	block := lowestBlock(t, g)
	ghost := engine.New(engine.KindBall, engine.WithBox(core.BoundingBox{Width: 50, Height: 50}))
	hit := engine.Hit{Collider: ghost, Collidee: block}

	assert.Panics(t, func() { block.Hooks.Collision(w, block, hit) })

	w.Strict = false
	assert.NotPanics(t, func() { block.Hooks.Collision(w, block, hit) })
	assert.True(t, w.Registry.Live(block.ID))
	assert.Zero(t, w.Score)
	assert.Empty(t, all(g, engine.KindPopup))

	ball := only(t, g, engine.KindBall)
	velocity := ball.Velocity
	ball.Hooks.Collision(w, ball, engine.Hit{Collider: ball, Collidee: ghost})
	assert.Equal(t, velocity, ball.Velocity)
}

func TestBallReboundsOffPaddle(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	paddle := only(t, g, engine.KindPaddle)
	ball := only(t, g, engine.KindBall)

	ball.Position = paddle.Position.Add(core.Vec(10, 36))
	ball.Velocity = core.Vec(3, -6)
	g.Step()

	assert.Equal(t, 6.0, ball.Velocity.Y)
	assert.Equal(t, 3.0, ball.Velocity.X)
}

func TestBallBounceFlipsVelocity(t *testing.T) {
	tests := []struct {
		name     string
		target   func(t *testing.T, g *Game) *engine.Entity
		offset   core.Vector2
		velocity core.Vector2
		expected core.Vector2
	}{
		{
			name:     "block head on",
			target:   lowestBlock,
			offset:   core.Vec(0, -41),
			velocity: core.Vec(1, 3),
			expected: core.Vec(1, -3),
		},
		{
			name:     "block corner moving away from center",
			target:   lowestBlock,
			offset:   core.Vec(-90, 8),
			velocity: core.Vec(2, 2),
			expected: core.Vec(2, -2),
		},
		{
			name: "paddle corner moving away from center",
			target: func(t *testing.T, g *Game) *engine.Entity {
				return only(t, g, engine.KindPaddle)
			},
			offset:   core.Vec(-90, -5),
			velocity: core.Vec(-2, -2),
			expected: core.Vec(-2, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			startPlaying(t, g)
			target := tt.target(t, g)
			keepBlocksApartFrom(g, target)

			ball := only(t, g, engine.KindBall)
			ball.Position = target.Position.Add(tt.offset)
			ball.Velocity = tt.velocity
			g.Step()

			assert.Equal(t, tt.expected, ball.Velocity)
		})
	}
}

// keepBlocksApartFrom leaves the target (when it is a block) and the block
// farthest above it, so a hit neither clears the round nor touches a neighbour.
func keepBlocksApartFrom(g *Game, target *engine.Entity) {
	var top *engine.Entity
	for _, b := range all(g, engine.KindBlock) {
		if b != target && (top == nil || b.Position.Y > top.Position.Y) {
			top = b
		}
	}
	w := g.World()
	for _, b := range all(g, engine.KindBlock) {
		if b != target && b != top {
			w.Remove(b.ID)
		}
	}
	w.Registry.Commit()
}

func TestPaddleDeflection(t *testing.T) {
	paddle := engine.New(engine.KindPaddle, engine.WithBox(core.BoundingBox{Width: 150, Height: 25}))
	ball := engine.New(engine.KindBall, engine.Moving(core.Vec(3, -4)))

	v := paddleDeflection(ball, paddle)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 5, v.Y, 1e-9)

	ball.Position = core.Vec(75, 0)
	v = paddleDeflection(ball, paddle)
	assert.InDelta(t, 5*math.Sin(math.Pi/3), v.X, 1e-9)
	assert.InDelta(t, 5*math.Cos(math.Pi/3), v.Y, 1e-9)

	ball.Position = core.Vec(-500, 0)
	v = paddleDeflection(ball, paddle)
	assert.Less(t, v.X, 0.0)
	assert.InDelta(t, 5, math.Hypot(v.X, v.Y), 1e-9)
}

func TestAngledPaddleOption(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Ball.AngledPaddle = true
	g := New()
	g.ResetWith(testRuntime(), cfg)
	startPlaying(t, g)

	paddle := only(t, g, engine.KindPaddle)
	ball := only(t, g, engine.KindBall)
	ball.Position = paddle.Position.Add(core.Vec(0, 36))
	ball.Velocity = core.Vec(3, -4)
	g.Step()

	assert.Greater(t, ball.Velocity.Y, 0.0)
	assert.InDelta(t, 5, math.Hypot(ball.Velocity.X, ball.Velocity.Y), 1e-9)
}

func TestPaddleTracksPointer(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	paddle := only(t, g, engine.KindPaddle)
	paddle.Position.X = 0
	y := paddle.Position.Y

	g.SetPointer(300, 200)
	g.Step()

	assert.InDelta(t, 10, paddle.Position.X, 1e-9)
	assert.Equal(t, y, paddle.Position.Y)
}

func TestHUDMirrorsWorld(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	w := g.World()
	w.Score = 420
	w.HeartsLeft = 1
	g.Step()

	sb, _ := engine.PropsOf[engine.ScoreboardProps](only(t, g, engine.KindScoreboard))
	lc, _ := engine.PropsOf[engine.LifeCounterProps](only(t, g, engine.KindLifeCounter))
	assert.Equal(t, 420, sb.Score)
	assert.Equal(t, engine.LifeCounterProps{HeartsLeft: 1, HeartCount: 3}, lc)
}

func TestResizeKeepsEntities(t *testing.T) {
	g := newTestGame(t)
	startPlaying(t, g)
	paddle := only(t, g, engine.KindPaddle)
	pos := paddle.Position

	g.Resize(100, 31)

	assert.Equal(t, 500.0, g.World().Arena.HalfWidth)
	assert.Equal(t, 375.0, g.World().Arena.HalfHeight)
	assert.Equal(t, pos, paddle.Position)
}

func TestProjectionRoundTrip(t *testing.T) {
	g := newTestGame(t)
	for _, cell := range [][2]int{{0, 1}, {40, 12}, {79, 24}} {
		p := g.ScreenToWorld(cell[0], cell[1])
		col, row := g.proj.ToScreen(p)
		assert.Equal(t, cell[0], col)
		assert.Equal(t, cell[1], row)
	}
	assert.Equal(t, core.Vec(5, 12.5), g.ScreenToWorld(40, 12))
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 25)

	g.Render(screen)
	assert.Contains(t, screen.String(), "3")

	startPlaying(t, g)
	g.Render(screen)
	out := screen.String()
	assert.True(t, strings.HasPrefix(screen.Row(0), " Score: 0"), "row 0 = %q", screen.Row(0))
	assert.Contains(t, screen.Row(0), "♥♥♥")
	assert.Contains(t, out, string(BlockChar))
	assert.Contains(t, out, string(BallChar))
	assert.Contains(t, out, string(PaddleChar))

	top := g.proj.ToWorld(0, 1)
	col, row := g.proj.ToScreen(core.Vec(-300, top.Y-40))
	assert.Equal(t, core.ColorRed, screen.GetCell(col, row).Color)

	assert.NotContains(t, out, string(BoxChar))
	g.SetShowBoxes(true)
	g.Render(screen)
	assert.Contains(t, screen.String(), string(BoxChar))
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(t)
	gameOverNow(t, g)
	screen := core.NewScreen(80, 25)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "Restart")
}

func TestScreenTooSmall(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1}, config.DefaultBreakoutConfig())

	before := g.Snapshot()
	for range 300 {
		g.Step()
	}
	assert.Equal(t, before.Hash(), g.Snapshot().Hash())

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

func TestTallVariant(t *testing.T) {
	g := NewTall()
	g.ResetWith(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 3, Strict: true}, config.DefaultBreakoutConfig())
	startPlaying(t, g)

	assert.Equal(t, "breakout_tall", g.ID())
	assert.Len(t, all(g, engine.KindBlock), 40)
	assert.Equal(t, 8, g.BlockRows(config.DefaultBreakoutConfig()))
	assert.Equal(t, 5, New().BlockRows(config.DefaultBreakoutConfig()))
}

// follow plays with the paddle chasing the ball.
func follow(g *Game, ticks int) {
	for range ticks {
		for e := range g.World().Registry.Each(engine.KindBall) {
			g.SetPointer(e.Position.X, e.Position.Y)
		}
		g.Step()
	}
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(t)
	g2 := newTestGame(t)

	follow(g1, 2000)
	follow(g2, 2000)

	snap1, snap2 := g1.Snapshot(), g2.Snapshot()
	assert.Equal(t, snap1.Hash(), snap2.Hash())
	assert.Equal(t, snap1, snap2)
	assert.Equal(t, uint64(2000), snap1.Tick)
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"breakout", "breakout_tall"} {
		require.True(t, registry.Exists(id))
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}
