package watchlist

import (
	"errors"
	"sync"
	"time"
)

// ErrRefreshCancelled is delivered to waiters whose pending run was cancelled.
var ErrRefreshCancelled = errors.New("refresh cancelled")

// Debouncer collapses bursts of triggers into one trailing run of fn.
// Every caller in a burst receives the result of that trailing run.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	fn      func() error
	timer   *time.Timer
	gen     uint64
	waiters []chan error
}

func NewDebouncer(window time.Duration, fn func() error) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger (re)arms the timer and returns a channel receiving the trailing result.
func (d *Debouncer) Trigger() <-chan error {
	ch := make(chan error, 1)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.waiters = append(d.waiters, ch)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
	return ch
}

// Pending reports whether a run is scheduled but has not started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops a scheduled run. A run that already started is not interrupted.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	waiters := d.waiters
	d.waiters = nil
	d.mu.Unlock()

	for _, ch := range waiters {
		ch <- ErrRefreshCancelled
	}
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		// re-armed or cancelled after this timer fired
		d.mu.Unlock()
		return
	}
	waiters := d.waiters
	d.waiters = nil
	d.timer = nil
	d.mu.Unlock()

	err := d.fn()
	for _, ch := range waiters {
		ch <- err
	}
}
