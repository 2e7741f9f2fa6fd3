// Package debounce provides a cancellable deferred call that coalesces
// bursts of triggers into a single invocation.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn once delay has elapsed since the most recent Trigger.
// Each Trigger replaces the pending timer rather than adding another.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New returns a Debouncer for fn. A non-positive delay runs fn on the next
// timer tick.
func New(delay time.Duration, fn func()) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger cancels any pending call and schedules a new one.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Stop cancels a pending call. It reports whether one was pending.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Flush runs a pending call immediately on the calling goroutine. It
// reports whether a call was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	pending := d.cancelLocked()
	d.mu.Unlock()
	if pending && d.fn != nil {
		d.fn()
	}
	return pending
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) cancelLocked() bool {
	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	// A callback that already started waiting on mu sees a stale generation.
	d.gen++
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()
	if d.fn != nil {
		d.fn()
	}
}
