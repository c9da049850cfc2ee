package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Breakout",
	Long: `Start playing. Without a variant a picker lists every variant and
returns to it after each game.

Controls:
  Mouse          - Move the paddle
  Click          - Press the Restart button after game over
  Arrows/WASD    - Move the pointer without a mouse
  Space/Enter    - Click at the pointer
  B              - Toggle bounding boxes
  ?              - Toggle help
  Esc            - Back to the picker
  Q/Ctrl+C       - Quit
  Ctrl+S         - Save a screenshot to ~/.breakout/screenshots

Difficulty options:
  easy   - More hearts, wider paddle, slower ball
  normal - Default settings, ball speeds up with the score
  hard   - Fewer hearts, narrower paddle, faster ball
  fixed  - No speed progression

Examples:
  breakout play
  breakout play breakout_tall
  breakout play --difficulty easy --boxes
  breakout play --config ./my-breakout.yaml --log-file breakout.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'breakout list' to see variants", gameID)
		}
	}

	// The TUI owns the terminal, so logs are dropped unless --log-file is set.
	logger, closeLog, err := newLogger(io.Discard, "breakout")
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Strict:   flagStrict,
	}

	if gameID == "" {
		return tui.RunSession(cfg, logger, flagBoxes)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	logger.Info("starting", "game", gameID, "size", fmt.Sprintf("%dx%d", width, height), "fps", flagFPS)
	return tui.Run(game, cfg, logger, flagBoxes)
}
