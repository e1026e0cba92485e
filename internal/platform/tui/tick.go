// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen ties the message to
// the ticker start that scheduled it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// teaTicker implements core.Ticker for a Bubble Tea model. The game calls it
// from inside Update, so it only records what the game asked for; the model
// turns that into a tea.Tick command afterwards.
type teaTicker struct {
	interval time.Duration
	gen      uint64
	active   bool
	inFlight bool // A tick command for gen is outstanding
}

func newTeaTicker() *teaTicker {
	return &teaTicker{}
}

func (t *teaTicker) Start(interval time.Duration) {
	t.gen++
	t.interval = interval
	t.active = true
	t.inFlight = false
}

func (t *teaTicker) SetInterval(interval time.Duration) {
	t.interval = interval
}

func (t *teaTicker) Stop() {
	t.gen++
	t.active = false
	t.inFlight = false
}

// cmd schedules the next tick, or returns nil when the ticker is stopped or a
// tick is already on its way.
func (t *teaTicker) cmd() tea.Cmd {
	if !t.active || t.inFlight {
		return nil
	}
	t.inFlight = true
	gen := t.gen
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: now}
	})
}

// accept reports whether msg belongs to the current start. Messages from a
// stopped or restarted ticker are dropped.
func (t *teaTicker) accept(msg TickMsg) bool {
	if !t.active || msg.Gen != t.gen {
		return false
	}
	t.inFlight = false
	return true
}
