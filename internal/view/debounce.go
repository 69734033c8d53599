package view

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of high-frequency signals (drag, zoom, slider
// scrubbing) into a single callback after the window elapses with no further
// trigger. It bounds the recompute rate without adding concurrent rebuilds:
// fn runs on the timer goroutine, one invocation at a time.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	fn     func()
	timer  *time.Timer
}

// NewDebouncer creates a debouncer invoking fn after each quiet window
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger restarts the quiet window. The callback fires once the window
// passes without another Trigger.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fn)
}

// Stop cancels any pending callback
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
