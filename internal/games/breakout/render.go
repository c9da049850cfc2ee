package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BlockChar  = '█'
	BoxChar    = '·'
	HeartFull  = '♥'
	HeartEmpty = '♡'
)

// hudRows is the number of terminal rows above the arena.
const hudRows = 1

// Projection maps between terminal cells and centered, Y-up simulation units.
// Row 0 is the HUD; the arena starts below it.
type Projection struct {
	CellW, CellH float64
	Cols, Rows   int
}

func newProjection(arena config.BreakoutArena, cols, rows int) Projection {
	return Projection{CellW: arena.CellWidth, CellH: arena.CellHeight, Cols: cols, Rows: rows}
}

// ArenaWidth returns the arena width in simulation units.
func (p Projection) ArenaWidth() float64 {
	return float64(p.Cols) * p.CellW
}

// ArenaHeight returns the arena height in simulation units.
func (p Projection) ArenaHeight() float64 {
	return float64(core.Max(p.Rows-hudRows, 0)) * p.CellH
}

// ToScreen returns the cell containing a simulation point.
func (p Projection) ToScreen(v core.Vector2) (col, row int) {
	col = int(math.Floor((v.X + p.ArenaWidth()/2) / p.CellW))
	row = hudRows + int(math.Floor((p.ArenaHeight()/2-v.Y)/p.CellH))
	return col, row
}

// ToWorld returns the simulation point at the center of a cell.
func (p Projection) ToWorld(col, row int) core.Vector2 {
	return core.Vec(
		(float64(col)+0.5)*p.CellW-p.ArenaWidth()/2,
		p.ArenaHeight()/2-(float64(row-hudRows)+0.5)*p.CellH,
	)
}

// cellSpan returns the half-open cell ranges covered by extents.
func (p Projection) cellSpan(e core.Extents) (c0, c1, r0, r1 int) {
	c0 = int(math.Round((e.Left + p.ArenaWidth()/2) / p.CellW))
	c1 = int(math.Round((e.Right + p.ArenaWidth()/2) / p.CellW))
	r0 = hudRows + int(math.Round((p.ArenaHeight()/2-e.Top)/p.CellH))
	r1 = hudRows + int(math.Round((p.ArenaHeight()/2-e.Bottom)/p.CellH))
	return c0, c1, r0, r1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	for _, e := range g.world.Registry.Snapshot() {
		switch e.Kind {
		case engine.KindBlock:
			g.renderBlock(dst, e)
		case engine.KindPaddle:
			g.renderPaddle(dst, e)
		case engine.KindBall:
			g.renderBall(dst, e)
		}
	}
	// Text goes on top of shapes.
	for _, e := range g.world.Registry.Snapshot() {
		switch e.Kind {
		case engine.KindScoreboard:
			g.renderScoreboard(dst, e)
		case engine.KindLifeCounter:
			g.renderLives(dst, e)
		case engine.KindCountdownBanner, engine.KindOutOfBoundsBanner:
			g.renderBanner(dst, e)
		case engine.KindPopup:
			g.renderPopup(dst, e)
		case engine.KindGameOverPanel:
			g.renderPanel(dst, e)
		}
	}

	if g.showBoxes {
		g.renderBoxes(dst)
	}
}

// renderBlock fills the block's cells, leaving its last column empty as a gap.
func (g *Game) renderBlock(dst *core.Screen, e *engine.Entity) {
	ext, ok := e.Extents()
	if !ok {
		return
	}
	props, _ := engine.PropsOf[engine.BlockProps](e)
	c0, c1, r0, r1 := g.proj.cellSpan(ext)
	dst.DrawRect(core.NewRect(c0, r0, c1-c0-1, r1-r0), BlockChar, props.Color)
}

func (g *Game) renderPaddle(dst *core.Screen, e *engine.Entity) {
	ext, ok := e.Extents()
	if !ok {
		return
	}
	c0, c1, _, _ := g.proj.cellSpan(ext)
	_, row := g.proj.ToScreen(e.Position)
	dst.DrawRect(core.NewRect(c0, row, c1-c0, 1), PaddleChar, core.ColorWhite)
}

func (g *Game) renderBall(dst *core.Screen, e *engine.Entity) {
	col, row := g.proj.ToScreen(e.Position)
	dst.SetColored(col, row, BallChar, core.ColorWhite)
}

func (g *Game) renderScoreboard(dst *core.Screen, e *engine.Entity) {
	props, _ := engine.PropsOf[engine.ScoreboardProps](e)
	col, row := g.proj.ToScreen(e.Position)
	dst.DrawText(col, row, fmt.Sprintf("Score: %d", props.Score))
}

// renderLives right-aligns the hearts on the life counter position.
func (g *Game) renderLives(dst *core.Screen, e *engine.Entity) {
	props, _ := engine.PropsOf[engine.LifeCounterProps](e)
	left := core.Max(props.HeartsLeft, 0)
	empty := core.Max(props.HeartCount-left, 0)
	hearts := strings.Repeat(string(HeartFull), left) + strings.Repeat(string(HeartEmpty), empty)
	col, row := g.proj.ToScreen(e.Position)
	dst.DrawTextColored(col-len([]rune(hearts))+1, row, hearts, core.ColorBrightRed)
}

func (g *Game) renderBanner(dst *core.Screen, e *engine.Entity) {
	props, _ := engine.PropsOf[engine.BannerProps](e)
	g.drawCentered(dst, e.Position, props.Text, core.ColorBrightYellow)
}

func (g *Game) renderPopup(dst *core.Screen, e *engine.Entity) {
	props, _ := engine.PropsOf[engine.PopupProps](e)
	g.drawCentered(dst, e.Position, props.Text, props.Color)
}

// renderPanel draws the game-over box and its restart button. Until the
// fade-in passes halfway everything is drawn dimmed.
func (g *Game) renderPanel(dst *core.Screen, e *engine.Entity) {
	props, _ := engine.PropsOf[engine.PanelProps](e)
	color := core.ColorGray
	if props.Opacity >= 0.5 {
		color = core.ColorWhite
	}

	title := "GAME OVER"
	subtitle := fmt.Sprintf("Final score: %d", props.Score)

	c0, c1, r0, r1 := g.proj.cellSpan(props.Restart)
	boxW := core.Max(core.Max(len(subtitle), c1-c0)+6, 24)
	boxX := (dst.Width() - boxW) / 2
	boxY := r0 - 5
	boxH := r1 - boxY + 1

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), color)
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, color)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+2, subtitle, color)

	button := core.NewRect(c0, r0, c1-c0, r1-r0)
	label := "Restart"
	if button.H >= 3 {
		dst.DrawBox(button, color)
	}
	dst.DrawTextColored(c0+(button.W-len(label))/2, r0+(button.H-1)/2, label, color)
}

// renderBoxes outlines every bounding box by walking its mesh.
func (g *Game) renderBoxes(dst *core.Screen) {
	for _, e := range g.world.Registry.Snapshot() {
		if e.Box == nil {
			continue
		}
		first := true
		var pc, pr int
		for p := range e.Box.Mesh(e.Position) {
			c, r := g.proj.ToScreen(p)
			if !first {
				drawSegment(dst, pc, pr, c, r)
			}
			pc, pr, first = c, r, false
		}
	}
}

// drawSegment draws an axis-aligned segment between two cells.
func drawSegment(dst *core.Screen, c0, r0, c1, r1 int) {
	for c := core.Min(c0, c1); c <= core.Max(c0, c1); c++ {
		for r := core.Min(r0, r1); r <= core.Max(r0, r1); r++ {
			dst.SetColored(c, r, BoxChar, core.ColorGreen)
		}
	}
}

func (g *Game) drawCentered(dst *core.Screen, pos core.Vector2, text string, color core.Color) {
	col, row := g.proj.ToScreen(pos)
	dst.DrawTextColored(col-len([]rune(text))/2, row, text, color)
}
