// Package snake implements the classic Snake game loop: a follow-the-leader
// body, queued turns committed at most once per tick, wall and self
// collisions, apple placement and a tick delay that shrinks with score.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// BoundaryPolicy decides what leaving the playfield does. A game keeps the
// policy it was built with for its whole life.
type BoundaryPolicy int

const (
	// BoundaryWrap re-enters the head on the opposite edge.
	BoundaryWrap BoundaryPolicy = iota
	// BoundaryLethal ends the game when the head leaves the playfield.
	BoundaryLethal
)

func (p BoundaryPolicy) String() string {
	if p == BoundaryLethal {
		return "lethal"
	}
	return "wrap"
}

// hudHeight is the number of screen rows above the playfield border.
const hudHeight = 2

// Grid used when the config fits the playfield to the screen but no screen
// size has been given yet.
const (
	defaultCols = 64
	defaultRows = 36
)

// Game holds the complete state of one Snake game.
type Game struct {
	policy BoundaryPolicy
	cfg    config.SnakeConfig
	rng    *rand.Rand
	ticker core.Ticker

	// Playfield
	cols  int
	rows  int
	start core.Point

	// Snake state
	body    Body
	dir     Direction
	pending []Direction // Turns waiting for a tick, oldest first

	apple   core.Point
	score   int
	running bool
	paused  bool
	won     bool
	delay   time.Duration
	tick    uint64

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a game with the given boundary policy and configuration.
// The game is idle until Reset or Start is called.
func New(policy BoundaryPolicy, cfg config.SnakeConfig) *Game {
	g := &Game{
		policy: policy,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(1)),
		ticker: core.NopTicker{},
	}
	g.sizePlayfield(0, 0)
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.policy == BoundaryLethal {
		return IDWalled
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.policy == BoundaryLethal {
		return "Snake (Walls)"
	}
	return "Snake"
}

// Policy returns the boundary policy of this game.
func (g *Game) Policy() BoundaryPolicy {
	return g.policy
}

// Rules describes the boundary rule for menus and scoreboards.
func (g *Game) Rules() string {
	if g.policy == BoundaryLethal {
		return "walls are lethal"
	}
	return "edges wrap around"
}

// SetTicker attaches the ticker the game starts, retimes and stops.
func (g *Game) SetTicker(t core.Ticker) {
	if t == nil {
		t = core.NopTicker{}
	}
	g.ticker = t
}

// Reset sizes the playfield for the screen, reseeds the RNG and restarts.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.sizePlayfield(rc.ScreenW, rc.ScreenH)
	g.updateTooSmall()

	g.Restart()
}

// sizePlayfield takes the grid from the config. A zero dimension fits the
// screen, or falls back to the default grid when the screen is unknown.
func (g *Game) sizePlayfield(screenW, screenH int) {
	g.cols = g.cfg.Playfield.Cols
	if g.cols <= 0 {
		g.cols = defaultCols
		if screenW > 0 {
			g.cols = screenW - 2
		}
	}
	g.rows = g.cfg.Playfield.Rows
	if g.rows <= 0 {
		g.rows = defaultRows
		if screenH > 0 {
			g.rows = screenH - hudHeight - 2
		}
	}
	g.cols = core.Max(g.cols, 1)
	g.rows = core.Max(g.rows, 1)
}

// Resize records a new screen size. The playfield keeps its size; the game
// holds still while it does not fit on screen.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateTooSmall()
}

// updateTooSmall holds the game while the playfield does not fit. Headless
// games never report a screen size and are never held.
func (g *Game) updateTooSmall() {
	if g.screenW <= 0 && g.screenH <= 0 {
		g.tooSmall = false
		return
	}
	g.tooSmall = g.screenW < g.cols+2 || g.screenH < g.rows+hudHeight+2
}

// Start puts the snake on its start cell heading right, clears score and
// queued turns, places the first apple and starts the ticker at the base
// delay. Calling Start on a running game re-initialises it.
func (g *Game) Start() {
	g.start = core.Point{
		X: core.Clamp(g.cfg.Snake.StartX, 0, g.cols-1),
		Y: core.Clamp(g.cfg.Snake.StartY, 0, g.rows-1),
	}
	g.body = NewBody(g.start, g.cfg.Snake.StartLength)
	g.dir = DirRight
	g.pending = g.pending[:0]
	g.score = 0
	g.tick = 0
	g.won = false
	g.paused = false
	g.running = true
	g.delay = g.cfg.Difficulty.DelayFor(0)

	if !g.placeApple() {
		g.end(true)
		return
	}
	g.ticker.Start(g.delay)
}

// Restart stops any pending tick and starts a fresh game.
func (g *Game) Restart() {
	g.ticker.Stop()
	g.Start()
}

// QueueDirection records a requested turn. Legality is decided when the
// turn is committed, against the heading active at that moment.
func (g *Game) QueueDirection(d Direction) {
	if !g.running {
		return
	}
	if len(g.pending) >= g.queueLimit() {
		return
	}
	g.pending = append(g.pending, d)
}

func (g *Game) queueLimit() int {
	if g.cfg.Snake.QueueLimit < 1 {
		return 1
	}
	return g.cfg.Snake.QueueLimit
}

// TogglePause pauses or resumes a running game.
func (g *Game) TogglePause() {
	if !g.running {
		return
	}
	g.paused = !g.paused
	if g.paused {
		g.ticker.Stop()
	} else {
		g.ticker.Start(g.delay)
	}
}

// Input applies a semantic action from the input source.
func (g *Game) Input(a core.Action) {
	if d, ok := DirectionFromAction(a); ok {
		g.QueueDirection(d)
		return
	}

	switch a {
	case core.ActionPause:
		g.TogglePause()
	case core.ActionRestart:
		if !g.running {
			g.Restart()
		}
	}
}

// Tick advances the game by one step. It does nothing unless the game is
// running, unpaused and visible.
func (g *Game) Tick() core.StepResult {
	if !g.running || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	g.commitDirection()

	next := g.body.Head().Add(g.dir.Delta())
	g.body.Shift(next)

	if !g.inField(next) {
		if g.policy == BoundaryLethal {
			g.end(false)
			return core.StepResult{State: g.State(), Died: true}
		}
		g.body.SetHead(core.Point{X: core.Wrap(next.X, g.cols), Y: core.Wrap(next.Y, g.rows)})
	}

	if g.body.HitsSelf() {
		g.end(false)
		return core.StepResult{State: g.State(), Died: true}
	}

	ate := false
	if g.body.Head() == g.apple {
		ate = true
		g.score++
		g.body.Grow()
		if !g.placeApple() {
			g.end(true)
			return core.StepResult{State: g.State(), Ate: true, Died: true}
		}
	}

	if delay := g.cfg.Difficulty.DelayFor(g.score); delay != g.delay {
		g.delay = delay
		g.ticker.SetInterval(delay)
	}

	return core.StepResult{State: g.State(), Ate: ate}
}

// commitDirection pops queued turns until one is a legal change of heading
// and applies it. At most one turn is committed per tick.
func (g *Game) commitDirection() {
	for len(g.pending) > 0 {
		d := g.pending[0]
		g.pending = g.pending[1:]
		if d != g.dir && !d.IsReverseOf(g.dir) {
			g.dir = d
			return
		}
	}
}

func (g *Game) inField(p core.Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// placeApple puts the apple on a uniformly random free cell. It returns
// false when the snake fills the playfield.
func (g *Game) placeApple() bool {
	occupied := make(map[core.Point]struct{}, g.body.Len())
	for _, seg := range g.body.segments {
		occupied[seg] = struct{}{}
	}

	free := make([]core.Point, 0, core.Max(g.cols*g.rows-len(occupied), 0))
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			p := core.Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.apple = core.Point{X: -1, Y: -1}
		return false
	}
	g.apple = free[g.rng.Intn(len(free))]
	return true
}

// end stops the game and its ticker.
func (g *Game) end(won bool) {
	g.running = false
	g.paused = false
	g.won = won
	g.pending = g.pending[:0]
	g.ticker.Stop()
}

// Running reports whether the game accepts ticks.
func (g *Game) Running() bool {
	return g.running
}

// Delay returns the current tick interval.
func (g *Game) Delay() time.Duration {
	return g.delay
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: !g.running,
		Won:      g.won,
		Paused:   g.paused,
	}
}
