package ui

import (
	"sync"
	"time"
)

// DefaultResizeDelay is used when the configured resize debounce is unset.
const DefaultResizeDelay = 150 * time.Millisecond

// Debouncer runs a function once calls have stopped arriving for delay.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
	seq   uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Debounce schedules fn, replacing any call still waiting.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while being replaced must not run.
		stale := seq != d.seq
		if !stale {
			d.timer = nil
		}
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Pending reports whether a call is waiting.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the waiting call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ResizeDebouncer collapses a burst of terminal resizes into the last size.
type ResizeDebouncer struct {
	debouncer *Debouncer

	mu                          sync.Mutex
	pendingWidth, pendingHeight int
	lastWidth, lastHeight       int
}

// NewResizeDebouncer creates a resize debouncer; delay <= 0 uses DefaultResizeDelay.
func NewResizeDebouncer(delay time.Duration) *ResizeDebouncer {
	if delay <= 0 {
		delay = DefaultResizeDelay
	}
	return &ResizeDebouncer{debouncer: NewDebouncer(delay)}
}

// Resize records the size and calls handler with the latest size once the
// burst settles.
func (rd *ResizeDebouncer) Resize(width, height int, handler func(width, height int)) {
	rd.mu.Lock()
	rd.pendingWidth, rd.pendingHeight = width, height
	rd.mu.Unlock()

	rd.debouncer.Debounce(func() {
		rd.mu.Lock()
		w, h := rd.pendingWidth, rd.pendingHeight
		rd.lastWidth, rd.lastHeight = w, h
		rd.mu.Unlock()
		handler(w, h)
	})
}

// LastSize returns the size most recently delivered to a handler.
func (rd *ResizeDebouncer) LastSize() (width, height int) {
	rd.mu.Lock()
	defer rd.mu.Unlock()
	return rd.lastWidth, rd.lastHeight
}

// Cancel drops a pending resize.
func (rd *ResizeDebouncer) Cancel() {
	rd.debouncer.Cancel()
}
