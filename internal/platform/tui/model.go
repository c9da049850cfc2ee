package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Model is the Bubble Tea model that drives one game: a tick loop calling
// Step, pointer input from the mouse or the keyboard, and the screen buffer.
type Model struct {
	game   registry.Game
	screen *core.Screen
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	logger *log.Logger
	state  core.GameState

	gen        int
	col, row   int // Pointer cell
	showBoxes  bool
	showHelp   bool
	quitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		logger: logger,
		col:    cfg.ScreenW / 2,
		row:    cfg.ScreenH / 2,
	}
}

// WithBoxes starts the model with the bounding box overlay on.
func (m Model) WithBoxes(on bool) Model {
	m.showBoxes = on
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.game.SetShowBoxes(m.showBoxes)
	m.logger.Debug("game started", "game", m.game.ID(), "size", fmt.Sprintf("%dx%d", m.config.ScreenW, m.config.ScreenH), "seed", m.config.Seed)

	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if key.Matches(msg, m.keys.Back) {
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionLeft:
		m.movePointer(-1, 0)
	case core.ActionRight:
		m.movePointer(1, 0)
	case core.ActionUp:
		m.movePointer(0, -1)
	case core.ActionDown:
		m.movePointer(0, 1)
	case core.ActionClick:
		m.game.Click()
	case core.ActionBoxes:
		m.showBoxes = !m.showBoxes
		m.game.SetShowBoxes(m.showBoxes)
	case core.ActionHelp:
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}

	return m, nil
}

// handleMouse moves the pointer with the mouse; a left press clicks.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.col, m.row = msg.X, msg.Y
	m.syncPointer()

	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.game.Click()
	}
	return m, nil
}

func (m *Model) movePointer(dc, dr int) {
	m.col = core.Clamp(m.col+dc, 0, core.Max(m.config.ScreenW-1, 0))
	m.row = core.Clamp(m.row+dr, 0, core.Max(m.config.ScreenH-1, 0))
	m.syncPointer()
}

func (m *Model) syncPointer() {
	p := m.game.ScreenToWorld(m.col, m.row)
	m.game.SetPointer(p.X, p.Y)
}

// handleResize processes window resize events. The running game keeps its
// entities; only the arena bounds follow the terminal.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.game.Resize(msg.Width, msg.Height)
	m.logger.Debug("resized", "cols", msg.Width, "rows", msg.Height)

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step()
	if result.State.Phase != m.state.Phase {
		m.logger.Debug("phase changed", "game", m.game.ID(), "phase", result.State.Phase, "score", result.State.Score)
	}
	m.state = result.State

	return m, tickCmd(m.config.TickRate, m.gen)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display. With help shown,
// the bottom rows of the arena give way to the key bindings.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if !m.showHelp {
		return RenderScreen(m.screen)
	}

	helpView := m.help.View(m.keys)
	rows := m.screen.Height() - lipgloss.Height(helpView)
	return renderRows(m.screen, rows) + "\n" + helpView
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, logger *log.Logger, showBoxes bool) error {
	model := NewModel(game, cfg, logger).WithBoxes(showBoxes)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
