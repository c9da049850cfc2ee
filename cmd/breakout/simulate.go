package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	flagTicks     int
	flagSimWidth  int
	flagSimHeight int
	flagAutopilot bool
	flagFinal     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run a headless game",
	Long: `Run a game without a terminal UI. The paddle chases the ball unless
--autopilot=false, in which case it stays where it starts. The run stops
after --ticks ticks or at game over, whichever comes first.

Phase changes are logged; the final state and a determinism hash are
printed at the end. The same --seed always gives the same hash.

Examples:
  breakout simulate --seed 42
  breakout simulate breakout_tall --ticks 100000 --log-level debug
  breakout simulate --autopilot=false --final`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 60*60*10, "Maximum ticks to simulate")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Terminal width in cells")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Terminal height in cells")
	simulateCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Steer the paddle toward the ball")
	simulateCmd.Flags().BoolVar(&flagFinal, "final", false, "Print the final screen")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	gameID := "breakout"
	if len(args) == 1 {
		gameID = args[0]
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr(), "simulate")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
		Strict:   flagStrict,
	})
	game.SetShowBoxes(flagBoxes)

	start := time.Now()
	state := game.State()
	ticks := 0
	for ticks < flagTicks && !state.GameOver {
		if flagAutopilot {
			steer(game)
		}
		next := game.Step().State
		ticks++
		if next.Phase != state.Phase {
			logger.Info("phase", "tick", ticks, "from", state.Phase, "to", next.Phase, "score", next.Score, "hearts", next.HeartsLeft)
		}
		state = next
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "variant:  %s\n", gameID)
	fmt.Fprintf(out, "seed:     %d\n", seed)
	fmt.Fprintf(out, "ticks:    %d (%s simulated in %s)\n", ticks,
		time.Duration(ticks)*time.Second/time.Duration(flagFPS), elapsed.Round(time.Millisecond))
	fmt.Fprintf(out, "phase:    %s\n", state.Phase)
	fmt.Fprintf(out, "score:    %d\n", state.Score)
	fmt.Fprintf(out, "hearts:   %d\n", state.HeartsLeft)
	if g, ok := game.(*breakout.Game); ok {
		snap := g.Snapshot()
		fmt.Fprintf(out, "blocks:   %d\n", snap.Blocks)
		fmt.Fprintf(out, "hash:     %016x\n", snap.Hash())
	}

	if flagFinal {
		screen := core.NewScreen(flagSimWidth, flagSimHeight)
		game.Render(screen)
		fmt.Fprintln(out)
		fmt.Fprintln(out, screen.String())
	}
	return nil
}

// steer points at the ball so the paddle follows it.
func steer(game registry.Game) {
	for _, e := range game.Entities() {
		if e.Kind == engine.KindBall {
			game.SetPointer(e.Position.X, e.Position.Y)
			return
		}
	}
}
