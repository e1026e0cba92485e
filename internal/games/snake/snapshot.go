package snake

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Snapshot is a read-only copy of the game state for rendering, replays and
// tests. It shares no memory with the game.
type Snapshot struct {
	Tick    uint64
	Body    []core.Point // Head at index 0
	Apple   core.Point
	Score   int
	Running bool
	Paused  bool
	Won     bool
	Dir     Direction
	Pending int // Queued turns not yet committed
	Delay   time.Duration
	Level   int // Active speed step, 0 = base delay
	Cols    int
	Rows    int
	Policy  BoundaryPolicy
}

// Head returns the head position.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}

// Len returns the body length.
func (s Snapshot) Len() int {
	return len(s.Body)
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	var body []core.Point
	if g.body.Len() > 0 {
		body = g.body.Segments()
	}
	return Snapshot{
		Tick:    g.tick,
		Body:    body,
		Apple:   g.apple,
		Score:   g.score,
		Running: g.running,
		Paused:  g.paused,
		Won:     g.won,
		Dir:     g.dir,
		Pending: len(g.pending),
		Delay:   g.delay,
		Level:   g.cfg.Difficulty.Level(g.score),
		Cols:    g.cols,
		Rows:    g.rows,
		Policy:  g.policy,
	}
}
