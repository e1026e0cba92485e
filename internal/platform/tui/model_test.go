package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// newWalledModel returns a model for a tiny walled field that ends after a
// handful of ticks.
func newWalledModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := config.DefaultSnakeConfig()
	cfg.Playfield.Cols = 4
	cfg.Playfield.Rows = 4
	cfg.Snake.StartLength = 2
	game := snake.New(snake.BoundaryLethal, cfg)
	return NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 3}, WithPlayer("tester"))
}

// tick delivers a tick for the ticker's current generation.
func tick(m Model) Model {
	next, _ := m.Update(TickMsg{Gen: m.ticker.gen, Time: time.Now()})
	return next.(Model)
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelInitSchedulesTick(t *testing.T) {
	m := newWalledModel(t, nil)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should schedule the first tick")
	}
	if !m.ticker.active || !m.ticker.inFlight {
		t.Error("Ticker should be active with a tick in flight")
	}
	if m.ticker.interval != 50*time.Millisecond {
		t.Errorf("Expected base interval, got %v", m.ticker.interval)
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()

	g := m.game.(*snake.Game)
	next, cmd := m.Update(TickMsg{Gen: m.ticker.gen - 1})
	m = next.(Model)
	if cmd != nil {
		t.Error("Stale tick should not schedule another")
	}
	if g.Snapshot().Tick != 0 {
		t.Error("Stale tick should not advance the game")
	}

	m = tick(m)
	if g.Snapshot().Tick != 1 {
		t.Error("Current tick should advance the game")
	}
}

func TestModelDirectionKeys(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()
	g := m.game.(*snake.Game)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if g.Snapshot().Pending != 1 {
		t.Fatal("Down arrow should queue a turn")
	}
	m = tick(m)
	if g.Snapshot().Dir != snake.DirDown {
		t.Errorf("Expected heading down, got %v", g.Snapshot().Dir)
	}
}

func TestModelRestartOnlyWhenOver(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()
	g := m.game.(*snake.Game)

	m = tick(m)
	m, _ = press(m, runeKey('r'))
	if g.Snapshot().Tick != 1 {
		t.Fatal("R should be ignored while playing")
	}

	for i := 0; i < 10 && !m.State().GameOver; i++ {
		m = tick(m)
	}
	if !m.State().GameOver {
		t.Fatal("Walled game should have ended")
	}

	m, cmd := press(m, runeKey('r'))
	if m.State().GameOver {
		t.Error("R after game over should restart")
	}
	if cmd == nil {
		t.Error("Restart should schedule a tick")
	}
}

func TestModelPauseResumes(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()

	m, _ = press(m, runeKey('p'))
	if !m.State().Paused || m.ticker.active {
		t.Fatal("P should pause and stop the ticker")
	}

	m, cmd := press(m, runeKey('p'))
	if m.State().Paused {
		t.Error("Second P should resume")
	}
	if cmd == nil {
		t.Error("Resume should schedule a tick")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// A 2x1 field with a one-cell snake: the only free cell holds the
	// apple, so the first tick eats it and fills the field.
	cfg := config.DefaultSnakeConfig()
	cfg.Playfield.Cols = 2
	cfg.Playfield.Rows = 1
	cfg.Snake.StartLength = 1
	game := snake.New(snake.BoundaryWrap, cfg)
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 1}, WithPlayer("tester"))
	m.Init()

	m = tick(m)
	if !m.State().GameOver || m.State().Score != 1 {
		t.Fatalf("Expected a finished game with score 1, got %+v", m.State())
	}

	// Extra updates must not save again.
	m, _ = press(m, runeKey('x'))
	next, _ := m.Update(TickMsg{Gen: m.ticker.gen})
	m = next.(Model)

	scores, err := store.TopScores(snake.IDClassic, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Player != "tester" || scores[0].Score != 1 {
		t.Errorf("Unexpected entry: %+v", scores[0])
	}

	// Restarting arms the save for the next game.
	m, _ = press(m, runeKey('r'))
	if m.scoreSaved {
		t.Error("Restart should reset the saved flag")
	}
}

func TestModelBackOnlyWhenOverOrPaused(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("Esc should be ignored while playing")
	}

	m, _ = press(m, runeKey('p'))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("Esc while paused should go back to the menu")
	}
	if m.View() != "" {
		t.Error("View should be empty after leaving")
	}
}

func TestModelQuit(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()

	m, cmd := press(m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("Q should quit")
	}
}

func TestModelViewDrawsGame(t *testing.T) {
	m := newWalledModel(t, nil)
	m.Init()

	view := m.View()
	if !strings.Contains(view, "Score: 0") {
		t.Error("View should contain the HUD")
	}
	if !strings.ContainsRune(view, snake.HeadChar) {
		t.Error("View should contain the snake head")
	}
}

func TestTeaTickerGenerations(t *testing.T) {
	tk := newTeaTicker()
	if tk.cmd() != nil {
		t.Fatal("Inactive ticker should not schedule")
	}

	tk.Start(10 * time.Millisecond)
	if tk.cmd() == nil {
		t.Fatal("Started ticker should schedule")
	}
	if tk.cmd() != nil {
		t.Error("Only one tick may be in flight")
	}

	old := TickMsg{Gen: tk.gen}
	tk.Stop()
	if tk.accept(old) {
		t.Error("Tick from before Stop should be dropped")
	}

	tk.Start(10 * time.Millisecond)
	tk.SetInterval(5 * time.Millisecond)
	if tk.interval != 5*time.Millisecond {
		t.Errorf("SetInterval did not apply, got %v", tk.interval)
	}
	if tk.accept(old) {
		t.Error("Tick from an older start should be dropped")
	}
	if !tk.accept(TickMsg{Gen: tk.gen}) {
		t.Error("Current tick should be accepted")
	}
}

func TestGameKeyMap(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('w'), core.ActionUp},
		{runeKey('k'), core.ActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{runeKey('s'), core.ActionDown},
		{runeKey('j'), core.ActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{runeKey('a'), core.ActionLeft},
		{runeKey('h'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{runeKey('d'), core.ActionRight},
		{runeKey('l'), core.ActionRight},
		{runeKey('p'), core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('z'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorRed)
	s.DrawText(0, 1, "xyz")

	out := RenderScreen(s)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "xyz") {
		t.Errorf("Rendered output lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("Expected 2 lines, got %q", out)
	}
}
