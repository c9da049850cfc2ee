package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// Phase is the state of the round state machine.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseBallLost
	PhaseGameOver
)

// String returns the phase name shown by hosts.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseBallLost:
		return "ball-lost"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

func (g *Game) setPhase(p Phase) {
	if g.phase != p {
		logger.Debug("phase", "from", g.phase, "to", p, "score", g.world.Score, "hearts", g.world.HeartsLeft)
	}
	g.phase = p
}

// enterCountdown shows the banner and schedules the switch to playing.
func (g *Game) enterCountdown() {
	g.setPhase(PhaseCountdown)
	g.world.Spawn(g.rules.countdownBanner())
	g.world.After(g.rules.countdownTicks, func(*engine.World) {
		if g.phase == PhaseCountdown {
			g.enterPlaying()
		}
	})
}

// enterPlaying replaces the banner with the HUD, paddle, ball and grid.
func (g *Game) enterPlaying() {
	w := g.world
	w.Registry.RemoveKind(engine.KindCountdownBanner)
	w.Spawn(g.rules.scoreboard(w))
	w.Spawn(g.rules.lifeCounter(w))
	w.Spawn(g.rules.paddle(w))
	g.rules.placeBlocks(w, g.rows())
	g.spawnBall()
	g.setPhase(PhasePlaying)
}

func (g *Game) spawnBall() {
	w := g.world
	speed := g.difficulty.Speed(g.rules.cfg.Ball.Speed, w.Score, int(w.Timers.Now()))
	w.Spawn(g.rules.ball(g.rules.ballSpawn(w, g.rows()), g.rules.launchVelocity(w, speed)))
}

// handleEvents drains the messages hooks sent during the last pass.
func (g *Game) handleEvents() {
	for events := g.world.Drain(); len(events) > 0; events = g.world.Drain() {
		for _, ev := range events {
			switch ev.Kind {
			case engine.EventBallLost:
				g.ballLost(ev.Source)
			case engine.EventRoundCleared:
				g.clearRound()
			case engine.EventRestartRequested:
				g.restart()
			}
		}
	}
}

// ballLost removes the ball, applies the penalty and either schedules a
// respawn or ends the game.
func (g *Game) ballLost(ball engine.ID) {
	w := g.world
	if g.phase != PhasePlaying || !w.Registry.Live(ball) {
		return
	}

	penalty := g.rules.cfg.Scoring.LostPenalty
	w.Remove(ball)
	w.Score -= penalty
	w.Spawn(g.rules.outOfBoundsBanner(penalty))
	g.setPhase(PhaseBallLost)

	if w.HeartsLeft <= 0 {
		g.gameOver()
		return
	}

	w.HeartsLeft--
	w.After(g.rules.respawnTicks, func(*engine.World) {
		if g.phase == PhaseBallLost {
			g.respawn()
		}
	})
}

func (g *Game) respawn() {
	g.world.Registry.RemoveKind(engine.KindOutOfBoundsBanner)
	g.spawnBall()
	g.setPhase(PhasePlaying)
}

// clearRound rebuilds the grid after the last block fell and awards the bonus.
func (g *Game) clearRound() {
	w := g.world
	if g.phase != PhasePlaying {
		return
	}

	bonus := g.rules.cfg.Scoring.ClearBonus
	w.Registry.RemoveKind(engine.KindBall)
	g.rules.placeBlocks(w, g.rows())
	g.spawnBall()
	w.Score += bonus
	w.Spawn(g.rules.popup(g.rules.ballSpawn(w, g.rows()), fmt.Sprintf("+%d", bonus), core.ColorBrightYellow))
	if w.HeartsLeft < w.HeartCount {
		w.HeartsLeft++
	}
	logger.Info("round cleared", "score", w.Score, "hearts", w.HeartsLeft)
}

// gameOver wipes the arena and shows the panel. Pending timers are invalidated.
func (g *Game) gameOver() {
	w := g.world
	w.Registry.Clear()
	w.Timers.Bump()
	w.Spawn(g.rules.gameOverPanel(w))
	g.setPhase(PhaseGameOver)
	logger.Info("game over", "score", w.Score)
}

// restart starts a new game from the countdown.
func (g *Game) restart() {
	w := g.world
	if g.phase != PhaseGameOver {
		return
	}
	w.Registry.Clear()
	w.Timers.Bump()
	w.Score = 0
	w.HeartsLeft = w.HeartCount
	g.enterCountdown()
}
