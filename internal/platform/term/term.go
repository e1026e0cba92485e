// Package term runs a game on a tcell screen. Input is polled on its own
// goroutine and ticks come from wall-clock timers, both serialized through
// a loop.Loop.
package term

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/loop"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options configures a Frontend.
type Options struct {
	Store  *storage.Store // Optional score store
	Player string
	Seed   int64 // 0 picks a time-based seed
	Logger *log.Logger
}

// Frontend draws a game on a tcell screen and feeds it keyboard input.
type Frontend struct {
	screen tcell.Screen
	loop   *loop.Loop
	buf    *core.Screen
	opts   Options

	scoreSaved bool
}

// New creates a frontend for game. The screen is initialised by Run.
func New(screen tcell.Screen, game registry.Game, opts Options) *Frontend {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	f := &Frontend{
		screen: screen,
		buf:    core.NewScreen(0, 0),
		opts:   opts,
	}
	f.loop = loop.New(game, f.frame, loop.WithLogger(opts.Logger))
	return f
}

// Run initialises the screen and plays until the user quits or ctx is
// cancelled.
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.screen.Init(); err != nil {
		return err
	}
	defer f.screen.Fini()
	defer f.loop.Close()

	f.screen.SetStyle(tcell.StyleDefault)
	f.screen.HideCursor()
	f.screen.Clear()

	w, h := f.screen.Size()
	f.loop.Do(func(registry.Game) {
		f.buf.Resize(w, h)
	})
	f.loop.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, Seed: f.opts.Seed})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event)
	go f.poll(ctx, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if quit := f.handle(ev); quit {
				return nil
			}
		}
	}
}

// poll forwards tcell events until ctx ends or the screen is finalised.
func (f *Frontend) poll(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handle applies one event and reports whether the user asked to quit.
func (f *Frontend) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action := MapKey(ev)
		switch action {
		case core.ActionNone:
			return false
		case core.ActionQuit:
			return true
		case core.ActionRestart:
			over := false
			f.loop.Do(func(g registry.Game) {
				over = g.State().GameOver
			})
			if !over {
				return false
			}
		}
		f.loop.Input(action)

	case *tcell.EventResize:
		f.screen.Sync()
		w, h := ev.Size()
		f.loop.Do(func(registry.Game) {
			f.buf.Resize(w, h)
		})
		f.loop.Resize(w, h)
	}
	return false
}

// frame runs under the loop lock after every change to the game.
func (f *Frontend) frame(g registry.Game) {
	g.Render(f.buf)
	Draw(f.screen, f.buf)
	f.screen.Show()

	state := g.State()
	if !state.GameOver {
		f.scoreSaved = false
		return
	}
	if f.scoreSaved {
		return
	}
	f.scoreSaved = true
	if f.opts.Store == nil || state.Score == 0 {
		return
	}
	if _, err := f.opts.Store.SaveScore(g.ID(), f.opts.Player, state.Score); err != nil {
		f.opts.Logger.Error("could not save score", "game", g.ID(), "error", err)
	}
}

// MapKey translates a tcell key event to a game action.
func MapKey(ev *tcell.EventKey) core.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return core.ActionUp
	case tcell.KeyDown:
		return core.ActionDown
	case tcell.KeyLeft:
		return core.ActionLeft
	case tcell.KeyRight:
		return core.ActionRight
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return core.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W', 'k':
			return core.ActionUp
		case 's', 'S', 'j':
			return core.ActionDown
		case 'a', 'A', 'h':
			return core.ActionLeft
		case 'd', 'D', 'l':
			return core.ActionRight
		case 'p', 'P', ' ':
			return core.ActionPause
		case 'r', 'R':
			return core.ActionRestart
		case 'q', 'Q':
			return core.ActionQuit
		}
	}
	return core.ActionNone
}

// styles maps core colors to tcell styles.
var styles = map[core.Color]tcell.Style{}

func init() {
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		style := tcell.StyleDefault
		if n, err := strconv.Atoi(c.ANSI()); err == nil {
			style = style.Foreground(tcell.PaletteColor(n))
		}
		styles[c] = style
	}
}

// Draw copies a character buffer onto a tcell screen.
func Draw(dst tcell.Screen, src *core.Screen) {
	w, h := dst.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := src.GetCell(x, y)
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			dst.SetContent(x, y, r, nil, styles[cell.Color])
		}
	}
}
