package core

import "time"

// Ticker is the periodic callback a game drives. The game starts it, changes
// its interval as difficulty rises and stops it when the game ends. The
// platform decides how ticks are actually delivered.
type Ticker interface {
	// Start (re)starts ticking at the given interval.
	Start(interval time.Duration)

	// SetInterval changes the interval of future ticks only.
	SetInterval(interval time.Duration)

	// Stop cancels any pending tick.
	Stop()
}

// NopTicker ignores all calls. Used by headless games and tests that call
// Tick by hand.
type NopTicker struct{}

func (NopTicker) Start(time.Duration)       {}
func (NopTicker) SetInterval(time.Duration) {}
func (NopTicker) Stop()                     {}
