package term

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want core.Action
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), core.ActionUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), core.ActionDown},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.ActionLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), core.ActionRight},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), core.ActionUp},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), core.ActionLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), core.ActionDown},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), core.ActionRight},
		{tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), core.ActionPause},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), core.ActionRestart},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), core.ActionQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), core.ActionNone},
	}

	for _, tt := range tests {
		if got := MapKey(tt.ev); got != tt.want {
			t.Errorf("MapKey(%s) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestDrawCopiesBuffer(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(10, 3)

	buf := core.NewScreen(10, 3)
	buf.DrawText(0, 0, "snake")
	buf.SetColored(2, 1, '●', core.ColorRed)

	Draw(sim, buf)
	sim.Show()

	cells, w, _ := sim.GetContents()
	var row strings.Builder
	for x := 0; x < 5; x++ {
		row.WriteRune(cells[x].Runes[0])
	}
	if row.String() != "snake" {
		t.Errorf("Row 0 = %q", row.String())
	}

	apple := cells[1*w+2]
	if apple.Runes[0] != '●' {
		t.Errorf("Expected apple glyph, got %q", apple.Runes[0])
	}
	fg, _, _ := apple.Style.Decompose()
	if fg != tcell.PaletteColor(1) {
		t.Errorf("Expected red foreground, got %v", fg)
	}
}

// screenText returns the simulation screen contents as text.
func screenText(sim tcell.SimulationScreen) string {
	cells, w, _ := sim.GetContents()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%w == 0 {
			b.WriteRune('\n')
		}
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func waitForText(t *testing.T, sim tcell.SimulationScreen, text string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(screenText(sim), text) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("screen never showed %q:\n%s", text, screenText(sim))
}

func TestFrontendPlaysAndQuits(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := config.DefaultSnakeConfig()
	cfg.Playfield.Cols = 6
	cfg.Playfield.Rows = 4
	cfg.Difficulty.BaseDelay = 2 * time.Millisecond
	game := snake.New(snake.BoundaryLethal, cfg)

	sim := tcell.NewSimulationScreen("UTF-8")
	f := New(sim, game, Options{Store: store, Player: "sim", Seed: 5})

	done := make(chan error, 1)
	go func() { done <- f.Run(context.Background()) }()

	waitForText(t, sim, "Score:")
	// Heading right on a 6-wide walled field ends the game quickly.
	waitForText(t, sim, "Game Over")

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}

	if !game.State().GameOver {
		t.Error("Game should be over")
	}
}

func TestFrontendStopsOnCancel(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	game := snake.New(snake.BoundaryWrap, cfg)
	sim := tcell.NewSimulationScreen("UTF-8")
	f := New(sim, game, Options{Seed: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	waitForText(t, sim, "Score:")
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
