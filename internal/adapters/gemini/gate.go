package gemini

import (
	"sync"
	"time"
)

// Gate enforces a minimum spacing between outbound model calls. It is a
// politeness throttle, not a token bucket: a caller arriving early simply
// sleeps out the remainder of the interval. One gate serializes all AI calls
// of the process regardless of which operation issues them. Clock and sleep
// are injectable so tests can control timing without real delays.
type Gate struct {
	mu    sync.Mutex
	min   time.Duration
	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func NewGate(min time.Duration) *Gate {
	return &Gate{min: min, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until at least the configured interval has passed since the
// previous call.
func (g *Gate) Wait() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.last.IsZero() {
		if d := g.min - g.now().Sub(g.last); d > 0 {
			g.sleep(d)
		}
	}
	g.last = g.now()
}
