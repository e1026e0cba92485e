// Package loop drives a game from wall-clock timers for frontends that
// deliver input on their own goroutine.
//
// A Loop is the game's Ticker. Timer callbacks and input both take the same
// mutex, so the game only ever sees one caller at a time and a tick never
// runs concurrently with a direction change.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// FrameFunc is called after every tick or input with the loop lock held.
// It may read and render the game but must not call back into the Loop.
type FrameFunc func(g registry.Game)

// Loop owns a game and the timer that ticks it.
type Loop struct {
	mu     sync.Mutex
	game   registry.Game
	frame  FrameFunc
	logger *log.Logger

	timer    *time.Timer
	interval time.Duration
	gen      uint64 // Bumped on Start/Stop so stale timer callbacks drop out
	active   bool
	closed   bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for timer changes.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) {
		lp.logger = l
	}
}

// New wraps a game. The loop becomes the game's ticker; call Reset to start
// playing.
func New(game registry.Game, frame FrameFunc, opts ...Option) *Loop {
	if frame == nil {
		frame = func(registry.Game) {}
	}
	l := &Loop{
		game:   game,
		frame:  frame,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	game.SetTicker(l)
	return l
}

// Start implements core.Ticker. The game calls it while the loop lock is
// already held.
func (l *Loop) Start(interval time.Duration) {
	if l.closed {
		return
	}
	l.stopTimer()
	l.gen++
	l.interval = interval
	l.active = true
	l.schedule()
	l.logger.Debug("ticker started", "game", l.game.ID(), "interval", interval)
}

// SetInterval implements core.Ticker. The pending tick keeps its deadline;
// the new interval applies from the next one.
func (l *Loop) SetInterval(interval time.Duration) {
	if interval == l.interval {
		return
	}
	l.interval = interval
	l.logger.Debug("ticker interval changed", "game", l.game.ID(), "interval", interval)
}

// Stop implements core.Ticker.
func (l *Loop) Stop() {
	if !l.active {
		return
	}
	l.stopTimer()
	l.gen++
	l.active = false
	l.logger.Debug("ticker stopped", "game", l.game.ID())
}

// Interval returns the current tick interval.
func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}

// Active reports whether ticks are scheduled.
func (l *Loop) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

func (l *Loop) schedule() {
	gen := l.gen
	l.timer = time.AfterFunc(l.interval, func() {
		l.fire(gen)
	})
}

func (l *Loop) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Loop) fire(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || !l.active || gen != l.gen {
		return
	}

	l.game.Tick()

	// The tick may have stopped or restarted the ticker.
	if l.active && gen == l.gen {
		l.schedule()
	}
	l.frame(l.game)
}

// Reset resets the game for a screen size and seed.
func (l *Loop) Reset(rc core.RuntimeConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.game.Reset(rc)
	l.frame(l.game)
}

// Input forwards an action to the game.
func (l *Loop) Input(a core.Action) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.game.Input(a)
	l.frame(l.game)
}

// Resize forwards a new screen size to the game.
func (l *Loop) Resize(w, h int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.game.Resize(w, h)
	l.frame(l.game)
}

// Do runs fn with exclusive access to the game.
func (l *Loop) Do(fn func(g registry.Game)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.game)
}

// Run blocks until ctx is cancelled, then stops the timer.
func (l *Loop) Run(ctx context.Context) error {
	<-ctx.Done()
	l.Close()
	return nil
}

// Close stops ticking for good. Later input is ignored.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopTimer()
	l.gen++
	l.active = false
	l.closed = true
}
