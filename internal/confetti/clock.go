package confetti

import "time"

// DefaultFPS approximates a display refresh rate.
const DefaultFPS = 60

// FrameClock supplies the per-frame timestamps that drive a play.
type FrameClock interface {
	Now() time.Time
	// Frames starts a fresh frame source. The returned func releases it.
	Frames() (<-chan time.Time, func())
}

// TickerClock emits frames from a time.Ticker.
type TickerClock struct {
	interval time.Duration
}

// NewTickerClock returns a clock ticking fps times per second.
func NewTickerClock(fps int) TickerClock {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return TickerClock{interval: time.Second / time.Duration(fps)}
}

func (c TickerClock) Now() time.Time { return time.Now() }

func (c TickerClock) Frames() (<-chan time.Time, func()) {
	t := time.NewTicker(c.interval)
	return t.C, t.Stop
}
