package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// RegenTimer fires a regeneration callback on a fixed interval of a TimeProvider's clock
// The host's update loop drives it through Poll, so virtual clocks work unchanged
type RegenTimer struct {
	clock    TimeProvider
	interval time.Duration
	fire     func()

	mu      sync.Mutex
	next    time.Time
	fired   atomic.Uint64
	stopped atomic.Bool
}

// StartRegeneration arms a timer whose first deadline is one interval from now
// A non-positive interval returns a timer that never fires
func StartRegeneration(clock TimeProvider, interval time.Duration, fire func()) *RegenTimer {
	t := &RegenTimer{
		clock:    clock,
		interval: interval,
		fire:     fire,
		next:     clock.Now().Add(interval),
	}
	if interval <= 0 {
		t.stopped.Store(true)
	}
	return t
}

// Poll fires the callback if the deadline has passed and reports whether it fired
// Missed intervals collapse into a single fire; each fire replaces the whole batch anyway
func (t *RegenTimer) Poll() bool {
	if t.stopped.Load() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-check under lock: Stop may have won the race
	if t.stopped.Load() {
		return false
	}

	now := t.clock.Now()
	if now.Before(t.next) {
		return false
	}

	t.next = t.next.Add(t.interval)
	if !now.Before(t.next) {
		t.next = now.Add(t.interval)
	}

	t.fired.Add(1)
	t.fire()
	return true
}

// Stop disarms the timer, waiting for an in-flight fire to finish
// Safe to call more than once
func (t *RegenTimer) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	t.mu.Lock()
	t.mu.Unlock()
}

// Active reports whether the timer can still fire
func (t *RegenTimer) Active() bool {
	return !t.stopped.Load()
}

// Next returns the upcoming deadline
func (t *RegenTimer) Next() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

// Fired returns how many times the callback ran
func (t *RegenTimer) Fired() uint64 {
	return t.fired.Load()
}
