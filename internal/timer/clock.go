// Clock/Ticker are a minimal abstraction over time sources, so the
// timer loop's production path (stdlib time) and test path
// (coder/quartz's mock clock, grounded on its use in the teacher's
// internal/testing/test_infrastructure.go) share one small surface
// instead of spreading quartz calls through the whole subsystem.
package timer

import (
	"time"

	"github.com/coder/quartz"
)

// Clock constructs Tickers. SystemClock is the production
// implementation; QuartzClock wraps a quartz.Clock for deterministic
// tests.
type Clock interface {
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on a channel and can be stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the default production Clock, backed by time.Ticker.
type SystemClock struct{}

func (SystemClock) NewTicker(d time.Duration) Ticker {
	t := time.NewTicker(d)
	return systemTicker{t}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }

// QuartzClock adapts a quartz.Clock (real or quartz.NewMock()) to
// Clock, for deterministic timer tests that advance time explicitly
// instead of sleeping.
type QuartzClock struct {
	Clock quartz.Clock
}

func (q QuartzClock) NewTicker(d time.Duration) Ticker {
	t := q.Clock.NewTicker(d)
	return quartzTicker{t}
}

type quartzTicker struct {
	t *quartz.Ticker
}

func (q quartzTicker) C() <-chan time.Time { return q.t.C }
func (q quartzTicker) Stop()               { q.t.Stop() }
