// Package debounce delays a stream of values until it has been quiet for a
// fixed period.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay matches the search box delay.
const DefaultDelay = 500 * time.Millisecond

// Debouncer emits the last pushed value on C once no new value has arrived
// for the configured delay. Every Push restarts the timer. C holds at most
// one value; an unread value is replaced by a newer one.
type Debouncer[T any] struct {
	delay time.Duration
	out   chan T

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func New[T any](delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{delay: delay, out: make(chan T, 1)}
}

func (d *Debouncer[T]) Delay() time.Duration { return d.delay }

// C delivers settled values.
func (d *Debouncer[T]) C() <-chan T { return d.out }

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq, v) })
}

// Stop cancels a pending emission.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire(seq uint64, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// a Push or Stop after this timer was armed wins, even if Stop lost the race
	if seq != d.seq {
		return
	}
	select {
	case <-d.out:
	default:
	}
	d.out <- v
}
