package modal

import (
	"sync"
	"time"
)

// Timer is a fire-once timer handle.
type Timer interface {
	Stop() bool
}

// Timers schedules fire-once callbacks.
type Timers interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealTimers schedules callbacks on the runtime timer heap.
type RealTimers struct{}

// AfterFunc implements Timers.
func (RealTimers) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// ManualTimers records scheduled callbacks and fires them on demand. Hosts
// that drive time themselves (tests, frame loops) use it in place of
// RealTimers.
type ManualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	owner   *ManualTimers
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// NewManualTimers constructs an empty ManualTimers.
func NewManualTimers() *ManualTimers {
	return &ManualTimers{}
}

// AfterFunc implements Timers.
func (m *ManualTimers) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{owner: m, delay: d, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Pending returns the delays of timers that have neither fired nor stopped.
func (m *ManualTimers) Pending() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Duration
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			out = append(out, t.delay)
		}
	}
	return out
}

// FireAll runs every pending timer in scheduling order, including timers
// scheduled by the callbacks themselves. It returns the number fired.
func (m *ManualTimers) FireAll() int {
	fired := 0
	for {
		t := m.next()
		if t == nil {
			return fired
		}
		t.fn()
		fired++
	}
}

// FireNext runs the oldest pending timer. It reports whether one fired.
func (m *ManualTimers) FireNext() bool {
	t := m.next()
	if t == nil {
		return false
	}
	t.fn()
	return true
}

func (m *ManualTimers) next() *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			t.fired = true
			return t
		}
	}
	return nil
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
