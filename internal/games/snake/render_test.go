package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func renderGame(g *Game, w, h int) *core.Screen {
	screen := core.NewScreen(w, h)
	g.Render(screen)
	return screen
}

func TestRenderPlaying(t *testing.T) {
	g, _ := newTestGame(BoundaryWrap, 10, 6)
	g.Resize(40, 12)
	screen := renderGame(g, 40, 12)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD should show the score, got %q", screen.Row(0))
	}

	// Field box is centered: x = (40-12)/2, inner cell (0,0) one in.
	head := screen.GetCell(15, 3)
	if head.Rune != HeadChar || head.Color != core.ColorBrightGreen {
		t.Errorf("Expected head glyph at (15,3), got %q color %v", head.Rune, head.Color)
	}

	apple := g.Snapshot().Apple
	cell := screen.GetCell(15+apple.X, 3+apple.Y)
	if cell.Rune != AppleChar || cell.Color != core.ColorRed {
		t.Errorf("Expected apple at %v, got %q color %v", apple, cell.Rune, cell.Color)
	}
	if strings.Contains(screen.String(), "Game Over") {
		t.Error("No overlay expected while playing")
	}
}

func TestRenderGameOver(t *testing.T) {
	g, _ := newTestGame(BoundaryLethal, 10, 6)
	g.Resize(40, 12)
	parkApple(g)
	for g.Running() {
		g.Tick()
	}

	out := renderGame(g, 40, 12).String()
	if !strings.Contains(out, "Game Over") {
		t.Error("Expected game over overlay")
	}
	if !strings.Contains(out, "Press R to restart") {
		t.Error("Expected restart hint")
	}
}

func TestRenderPaused(t *testing.T) {
	g, _ := newTestGame(BoundaryWrap, 10, 6)
	g.Resize(40, 12)
	g.TogglePause()

	if out := renderGame(g, 40, 12).String(); !strings.Contains(out, "Paused") {
		t.Error("Expected pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g, _ := newTestGame(BoundaryWrap, 10, 6)
	g.Resize(30, 5)

	if out := renderGame(g, 30, 12).String(); !strings.Contains(out, "Window too small") {
		t.Error("Expected too-small overlay")
	}
}
