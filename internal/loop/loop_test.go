package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// countGame ticks a counter and stops its ticker after a fixed number of
// ticks. Methods run under the loop lock, so the counters need no lock of
// their own when read through Loop.Do.
type countGame struct {
	ticker   core.Ticker
	interval time.Duration
	limit    int
	ticks    int
	inputs   []core.Action
	busy     bool
	overlap  bool
}

func (g *countGame) ID() string              { return "count" }
func (g *countGame) Title() string           { return "Count" }
func (g *countGame) SetTicker(t core.Ticker) { g.ticker = t }

func (g *countGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.ticker.Start(g.interval)
}

func (g *countGame) Input(a core.Action) {
	g.enter()
	defer g.leave()
	g.inputs = append(g.inputs, a)
	if a == core.ActionPause {
		g.ticker.Stop()
	}
}

func (g *countGame) Tick() core.StepResult {
	g.enter()
	defer g.leave()
	g.ticks++
	if g.limit > 0 && g.ticks >= g.limit {
		g.ticker.Stop()
		return core.StepResult{Died: true}
	}
	return core.StepResult{}
}

func (g *countGame) enter() {
	if g.busy {
		g.overlap = true
	}
	g.busy = true
}

func (g *countGame) leave() { g.busy = false }

func (g *countGame) Resize(int, int)       {}
func (g *countGame) Render(*core.Screen)   {}
func (g *countGame) State() core.GameState { return core.GameState{} }

func ticksOf(l *Loop) int {
	var n int
	l.Do(func(g registry.Game) {
		n = g.(*countGame).ticks
	})
	return n
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestLoopTicksUntilStopped(t *testing.T) {
	g := &countGame{interval: time.Millisecond, limit: 5}
	frames := 0
	l := New(g, func(registry.Game) { frames++ })
	defer l.Close()

	l.Reset(core.DefaultConfig())

	waitFor(t, "game to stop its ticker", func() bool { return !l.Active() })
	time.Sleep(10 * time.Millisecond)

	if n := ticksOf(l); n != 5 {
		t.Errorf("Expected exactly 5 ticks, got %d", n)
	}
	l.Do(func(registry.Game) {
		if frames != 6 {
			t.Errorf("Expected a frame for the reset and each tick, got %d", frames)
		}
	})
}

func TestLoopStopDropsPendingTick(t *testing.T) {
	g := &countGame{interval: 20 * time.Millisecond}
	l := New(g, nil)
	defer l.Close()

	l.Reset(core.DefaultConfig())
	l.Input(core.ActionPause)

	time.Sleep(60 * time.Millisecond)
	if n := ticksOf(l); n != 0 {
		t.Errorf("Stopped ticker should not fire, got %d ticks", n)
	}
}

func TestLoopRestartIgnoresStaleTimer(t *testing.T) {
	g := &countGame{interval: 30 * time.Millisecond}
	l := New(g, nil)
	defer l.Close()

	l.Reset(core.DefaultConfig())
	// A second start supersedes the first timer; only one tick stream runs.
	l.Do(func(registry.Game) { l.Start(30 * time.Millisecond) })

	time.Sleep(45 * time.Millisecond)
	if n := ticksOf(l); n > 1 {
		t.Errorf("Stale timer fired: %d ticks after 45ms at 30ms", n)
	}
}

func TestLoopSerializesInputAndTicks(t *testing.T) {
	g := &countGame{interval: time.Millisecond}
	l := New(g, nil)
	defer l.Close()
	l.Reset(core.DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Input(core.ActionUp)
			}
		}()
	}
	wg.Wait()
	waitFor(t, "a few ticks", func() bool { return ticksOf(l) > 3 })

	l.Do(func(registry.Game) {
		if g.overlap {
			t.Error("Tick and Input overlapped")
		}
		if len(g.inputs) != 200 {
			t.Errorf("Expected 200 inputs, got %d", len(g.inputs))
		}
	})
}

func TestLoopSetInterval(t *testing.T) {
	g := &countGame{interval: time.Hour}
	l := New(g, nil)
	defer l.Close()
	l.Reset(core.DefaultConfig())

	l.Do(func(registry.Game) { l.SetInterval(5 * time.Millisecond) })
	if l.Interval() != 5*time.Millisecond {
		t.Errorf("Interval() = %v", l.Interval())
	}
}

func TestLoopCloseIgnoresInput(t *testing.T) {
	g := &countGame{interval: time.Millisecond}
	l := New(g, nil)
	l.Reset(core.DefaultConfig())
	l.Close()

	l.Input(core.ActionUp)
	time.Sleep(10 * time.Millisecond)

	l.Do(func(registry.Game) {
		if len(g.inputs) != 0 {
			t.Error("Input after Close should be ignored")
		}
	})
	if l.Active() {
		t.Error("Closed loop should not be active")
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	g := &countGame{interval: time.Millisecond}
	l := New(g, nil)
	l.Reset(core.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.Active() {
		t.Error("Loop should be inactive after Run returns")
	}
}

func TestLoopDrivesSnake(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Playfield.Cols = 5
	cfg.Playfield.Rows = 5
	cfg.Difficulty.BaseDelay = time.Millisecond
	cfg.Difficulty.Enabled = false

	g := snake.New(snake.BoundaryLethal, cfg)
	l := New(g, nil)
	defer l.Close()

	l.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 20, Seed: 7})

	// Heading right on a 5-wide walled field ends the game within a few
	// ticks unless an apple happens to sit in row 0, which only delays it.
	waitFor(t, "game over", func() bool {
		var over bool
		l.Do(func(g registry.Game) { over = g.State().GameOver })
		return over
	})
	if l.Active() {
		t.Error("Game over should stop the loop's ticker")
	}
}
