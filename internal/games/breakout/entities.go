package breakout

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// maxDeflection is the steepest rebound angle off the paddle edge, from vertical.
const maxDeflection = math.Pi / 3

// rules holds the immutable numbers the entity factories and hooks need.
// Hooks read it but never write it; all mutable state goes through *engine.World.
type rules struct {
	cfg    config.BreakoutConfig
	colors []core.Color

	stepTicks      int
	countdownTicks int
	respawnTicks   int
	popupTicks     int
}

func newRules(cfg config.BreakoutConfig, tickRate int) *rules {
	colors := cfg.BlockColors()
	if len(colors) == 0 {
		colors = []core.Color{core.ColorWhite}
	}
	return &rules{
		cfg:            cfg,
		colors:         colors,
		stepTicks:      engine.Ticks(cfg.Timing.CountdownStep, tickRate),
		countdownTicks: engine.Ticks(cfg.Timing.Countdown, tickRate),
		respawnTicks:   engine.Ticks(cfg.Timing.Respawn, tickRate),
		popupTicks:     engine.Ticks(cfg.Timing.Popup, tickRate),
	}
}

func (r *rules) box(width, height float64) engine.Option {
	return engine.WithBox(core.BoundingBox{Width: width, Height: height})
}

// hud places HUD entities in the row above the arena.
func (r *rules) hudY(w *engine.World) float64 {
	return w.Arena.HalfHeight + r.cfg.Arena.CellHeight/2
}

// Ball

func (r *rules) ball(pos, vel core.Vector2) *engine.Entity {
	return engine.New(engine.KindBall,
		engine.At(pos),
		engine.Moving(vel),
		r.box(r.cfg.Ball.Size, r.cfg.Ball.Size),
		engine.WithProps(engine.BallProps{Radius: r.cfg.Ball.Size / 2}),
		engine.WithHooks(engine.Hooks{
			Physics:   r.ballPhysics,
			Collision: r.ballCollision,
		}),
	)
}

func (r *rules) ballPhysics(w *engine.World, self *engine.Entity) {
	if engine.WallBounce(w, self).Has(engine.EdgeBottom) {
		w.Emit(engine.EventBallLost, self.ID)
		return
	}
	engine.Detect(w, self)
}

func (r *rules) ballCollision(w *engine.World, self *engine.Entity, hit engine.Hit) {
	other := hit.Other(self)
	if !w.Invariant(w.Registry.Contains(self.ID) && w.Registry.Contains(other.ID),
		"ball hit references an entity outside the registry", "ball", self.ID, "other", other.ID) {
		return
	}

	if other.Kind == engine.KindPaddle && r.cfg.Ball.AngledPaddle {
		self.Velocity = paddleDeflection(self, other)
		return
	}

	sides := hit.SidesOf(self)
	switch {
	case !sides.Vertical():
		self.Velocity.Y = -self.Velocity.Y
	case !sides.Horizontal():
		self.Velocity.X = -self.Velocity.X
	}
}

// paddleDeflection sends the ball off at an angle proportional to where it
// struck the paddle, keeping its speed. Only used with ball.angled_paddle.
func paddleDeflection(ball, paddle *engine.Entity) core.Vector2 {
	speed := math.Hypot(ball.Velocity.X, ball.Velocity.Y)
	half := 1.0
	if paddle.Box != nil && paddle.Box.Width > 0 {
		half = paddle.Box.Width / 2
	}
	offset := math.Max(-1, math.Min(1, (ball.Position.X-paddle.Position.X)/half))
	angle := offset * maxDeflection
	return core.Vec(speed*math.Sin(angle), speed*math.Cos(angle))
}

// Blocks

func (r *rules) block(pos core.Vector2, color core.Color, points int) *engine.Entity {
	return engine.New(engine.KindBlock,
		engine.At(pos),
		r.box(r.cfg.Blocks.Width, r.cfg.Blocks.Height),
		engine.WithProps(engine.BlockProps{Color: color, Points: points}),
		engine.WithHooks(engine.Hooks{Collision: r.blockCollision}),
	)
}

func (r *rules) blockCollision(w *engine.World, self *engine.Entity, hit engine.Hit) {
	other := hit.Other(self)
	if !w.Invariant(w.Registry.Contains(self.ID) && w.Registry.Contains(other.ID),
		"block hit references an entity outside the registry", "block", self.ID, "other", other.ID) {
		return
	}
	if other.Kind != engine.KindBall || !w.Registry.Live(self.ID) {
		return
	}

	props, _ := engine.PropsOf[engine.BlockProps](self)
	w.Remove(self.ID)
	w.Score += props.Points
	w.Spawn(r.popup(self.Position, fmt.Sprintf("+%d", props.Points), props.Color))

	if w.Registry.Count(engine.KindBlock) == 0 {
		w.Emit(engine.EventRoundCleared, self.ID)
	}
}

// Paddle

func (r *rules) paddle(w *engine.World) *engine.Entity {
	y := -w.Arena.HalfHeight + r.cfg.Paddle.Offset
	return engine.New(engine.KindPaddle,
		engine.At(core.Vec(w.Pointer.X, y)),
		r.box(r.cfg.Paddle.Width, r.cfg.Paddle.Height),
		engine.WithProps(engine.PaddleProps{Width: r.cfg.Paddle.Width}),
		engine.WithHooks(engine.Hooks{Physics: r.paddlePhysics}),
	)
}

func (r *rules) paddlePhysics(w *engine.World, self *engine.Entity) {
	err := engine.TrackPointer(w, self, r.cfg.Paddle.Blend)
	w.Invariant(err == nil, "paddle tracking failed", "err", err)
}

// HUD

func (r *rules) scoreboard(w *engine.World) *engine.Entity {
	return engine.New(engine.KindScoreboard,
		engine.WithProps(engine.ScoreboardProps{Score: w.Score}),
		engine.WithHooks(engine.Hooks{
			Init:    r.scoreboardPhysics,
			Physics: r.scoreboardPhysics,
		}),
	)
}

func (r *rules) scoreboardPhysics(w *engine.World, self *engine.Entity) {
	self.Position = core.Vec(-w.Arena.HalfWidth+r.cfg.Arena.CellWidth, r.hudY(w))
	self.Props = engine.ScoreboardProps{Score: w.Score}
}

func (r *rules) lifeCounter(w *engine.World) *engine.Entity {
	return engine.New(engine.KindLifeCounter,
		engine.WithProps(engine.LifeCounterProps{HeartsLeft: w.HeartsLeft, HeartCount: w.HeartCount}),
		engine.WithHooks(engine.Hooks{
			Init:    r.lifeCounterPhysics,
			Physics: r.lifeCounterPhysics,
		}),
	)
}

func (r *rules) lifeCounterPhysics(w *engine.World, self *engine.Entity) {
	self.Position = core.Vec(w.Arena.HalfWidth-r.cfg.Arena.CellWidth, r.hudY(w))
	self.Props = engine.LifeCounterProps{HeartsLeft: w.HeartsLeft, HeartCount: w.HeartCount}
}

// Banners and popups

var countdownLabels = []string{"3", "2", "1", "Start!"}

func (r *rules) countdownBanner() *engine.Entity {
	return engine.New(engine.KindCountdownBanner,
		engine.WithProps(engine.BannerProps{Text: countdownLabels[0]}),
		engine.WithHooks(engine.Hooks{Init: r.countdownInit}),
	)
}

func (r *rules) countdownInit(w *engine.World, self *engine.Entity) {
	for i := 1; i < len(countdownLabels); i++ {
		label := countdownLabels[i]
		w.After(i*r.stepTicks, func(w *engine.World) {
			if w.Registry.Live(self.ID) {
				self.Props = engine.BannerProps{Text: label}
			}
		})
	}
}

func (r *rules) outOfBoundsBanner(penalty int) *engine.Entity {
	return engine.New(engine.KindOutOfBoundsBanner,
		engine.WithProps(engine.BannerProps{Text: fmt.Sprintf("Out of bounds! -%d", penalty)}),
		engine.WithHooks(engine.Hooks{Init: r.expireAfter(r.respawnTicks)}),
	)
}

func (r *rules) popup(pos core.Vector2, text string, color core.Color) *engine.Entity {
	return engine.New(engine.KindPopup,
		engine.At(pos),
		engine.Moving(core.Vec(0, r.cfg.Arena.CellHeight/float64(r.popupTicks))),
		engine.WithProps(engine.PopupProps{Text: text, Color: color}),
		engine.WithHooks(engine.Hooks{Init: r.expireAfter(r.popupTicks)}),
	)
}

// expireAfter returns an init hook that removes the entity after ticks.
func (r *rules) expireAfter(ticks int) func(*engine.World, *engine.Entity) {
	return func(w *engine.World, self *engine.Entity) {
		w.After(ticks, func(w *engine.World) {
			w.Remove(self.ID)
		})
	}
}

// Game over

func (r *rules) gameOverPanel(w *engine.World) *engine.Entity {
	button := core.BoundingBox{Width: 16 * r.cfg.Arena.CellWidth, Height: 2 * r.cfg.Arena.CellHeight}
	return engine.New(engine.KindGameOverPanel,
		engine.WithProps(engine.PanelProps{
			Score:   w.Score,
			Restart: button.Extents(core.Vec(0, -2*r.cfg.Arena.CellHeight)),
		}),
		engine.WithHooks(engine.Hooks{
			Physics: r.panelFade,
			Click:   r.panelClick,
		}),
	)
}

func (r *rules) panelFade(w *engine.World, self *engine.Entity) {
	p, ok := engine.PropsOf[engine.PanelProps](self)
	if !ok || p.Opacity >= 1 {
		return
	}
	p.Opacity = math.Min(1, p.Opacity+r.cfg.Timing.PanelFade)
	self.Props = p
}

func (r *rules) panelClick(w *engine.World, self *engine.Entity) {
	p, ok := engine.PropsOf[engine.PanelProps](self)
	if ok && p.Restart.Contains(w.Pointer) {
		w.Emit(engine.EventRestartRequested, self.ID)
	}
}
