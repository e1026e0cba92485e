package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Model is the Bubble Tea model for running a game. The game drives its own
// timing through the ticker the model hands it.
type Model struct {
	game       registry.Game
	ticker     *teaTicker
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	player     string
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the name scores are saved under.
func WithPlayer(name string) ModelOption {
	return func(m *Model) {
		m.player = name
	}
}

// WithLogger sets the logger for score saving errors.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:   game,
		ticker: newTeaTicker(),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		logger: log.Default(),
		config: cfg,
		keys:   DefaultGameKeyMap(),
		player: storage.DefaultPlayer,
	}
	for _, opt := range opts {
		opt(&m)
	}

	game.SetTicker(m.ticker)
	return m
}

// Init starts the game and its first tick.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return m.ticker.cmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	m.gameState = m.game.State()

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.ticker.Stop()
			m.backToMenu = true
		}
		return m, nil

	case core.ActionRestart:
		// Only a finished game can be restarted from the keyboard
		if !m.gameState.GameOver {
			return m, nil
		}
		m.game.Input(action)
		m.scoreSaved = false

	default:
		m.game.Input(action)
	}

	m.gameState = m.game.State()
	return m, m.ticker.cmd()
}

// handleResize processes window resize events. The playfield keeps its size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticker.accept(msg) {
		return m, nil
	}

	result := m.game.Tick()
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}

	return m, m.ticker.cmd()
}

// saveScore records the finished game once. Storage is best effort.
func (m *Model) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	runID, err := m.store.SaveScore(m.game.ID(), m.player, m.gameState.Score)
	if err != nil {
		m.logger.Error("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "player", m.player, "score", m.gameState.Score, "run", runID)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen by the last update.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model. Going back to the
// menu ends the program like quitting does.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) (backToMenu bool, err error) {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		exitOnBack{model},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if e, ok := final.(exitOnBack); ok {
		return e.BackToMenu(), nil
	}
	return false, nil
}

// exitOnBack quits the program when the wrapped model goes back to the menu.
type exitOnBack struct {
	Model
}

func (e exitOnBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := e.Model.Update(msg)
	e.Model = next.(Model)
	if e.BackToMenu() {
		return e, tea.Quit
	}
	return e, cmd
}
