// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

import (
	"sync"
	"time"
)

// Clock is the time source behind the recognizer's two timers. Tests and
// trace replay substitute a ManualClock; live surfaces use SystemClock.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
	// AfterFunc schedules fn to run once after d and returns a handle
	// that cancels it.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable one-shot timer armed through a Clock.
type Timer interface {
	// Stop cancels the timer; it reports false if the timer already
	// fired or was stopped.
	Stop() bool
}

// systemClock implements Clock on the runtime clock.
type systemClock struct{}

// Now returns the current time.
func (systemClock) Now() time.Time { return time.Now() }

// AfterFunc arms a runtime timer.
func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

// ManualClock is a Clock advanced explicitly by the caller. It backs the
// package tests and deterministic replay of recorded contact traces.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

// manualTimer is a callback pending on a ManualClock.
type manualTimer struct {
	clock    *ManualClock
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

// NewManualClock returns a ManualClock set to start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc schedules fn to run when the clock reaches now+d.
func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers in deadline order.
func (c *ManualClock) Advance(d time.Duration) {
	c.AdvanceTo(c.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing due timers in deadline order.
// Moving backward is a no-op. Callbacks run on the calling goroutine with
// no clock lock held, so they may arm or stop timers themselves.
func (c *ManualClock) AdvanceTo(target time.Time) {
	for {
		c.mu.Lock()
		if target.Before(c.now) {
			c.mu.Unlock()
			return
		}
		next := c.takeDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.deadline.After(c.now) {
			c.now = next.deadline
		}
		next.fired = true
		fn := next.fn
		c.mu.Unlock()
		fn()
	}
}

// takeDueLocked removes and returns the earliest live timer due at or
// before target, or nil if none is due.
func (c *ManualClock) takeDueLocked(target time.Time) *manualTimer {
	idx := -1
	for i, t := range c.timers {
		if t.stopped || t.fired || t.deadline.After(target) {
			continue
		}
		if idx == -1 || t.deadline.Before(c.timers[idx].deadline) {
			idx = i
		}
	}
	if idx == -1 {
		return nil
	}
	t := c.timers[idx]
	c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
	return t
}

// Stop cancels the timer; it reports false if it already fired or stopped.
func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
