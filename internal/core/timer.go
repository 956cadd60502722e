package core

import (
	"sync"
	"time"
)

// DefaultInterval is the stepping cadence while a board is running.
const DefaultInterval = 400 * time.Millisecond

// Ticker delivers ticks on C until Stop is called.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory constructs a Ticker for the given interval.
type TickerFactory func(d time.Duration) Ticker

type stdTicker struct {
	t *time.Ticker
}

// NewTicker returns a Ticker backed by time.Ticker. Non-positive intervals
// fall back to DefaultInterval.
func NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		d = DefaultInterval
	}
	return &stdTicker{t: time.NewTicker(d)}
}

func (s *stdTicker) C() <-chan time.Time { return s.t.C }

func (s *stdTicker) Stop() { s.t.Stop() }

// ManualTicker is a Ticker whose ticks are fired by the caller.
type ManualTicker struct {
	ch       chan time.Time
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewManualTicker returns a ticker that only ticks when Tick is called.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

// C returns the tick channel.
func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Stop marks the ticker stopped. Pending and future Tick calls return false.
func (m *ManualTicker) Stop() {
	m.stopOnce.Do(func() { close(m.stopped) })
}

// Tick blocks until the consumer receives a tick or the ticker is stopped.
// It reports whether the tick was delivered.
func (m *ManualTicker) Tick() bool {
	select {
	case <-m.stopped:
		return false
	default:
	}
	select {
	case m.ch <- time.Now():
		return true
	case <-m.stopped:
		return false
	}
}
