package eventloop

import (
	"sync"
	"time"
)

// Timer is a cancellable one-shot whose callback runs on the loop.
// CallOnce cancels and replaces any pending fire, so rapid re-arming
// coalesces into a single delayed invocation. Each purpose (position
// save debounce, activation tick) owns one Timer.
type Timer struct {
	loop *Loop
	fn   func()

	mu      sync.Mutex
	pending *time.Timer
	gen     uint64
}

// NewTimer creates a timer bound to the loop. The callback is fixed at
// construction; only the delay varies per arm.
func NewTimer(loop *Loop, fn func()) *Timer {
	return &Timer{loop: loop, fn: fn}
}

// CallOnce arms the timer to fire once after d, cancelling any pending
// fire first.
func (t *Timer) CallOnce(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	gen := t.gen
	if t.pending != nil {
		t.pending.Stop()
	}
	t.pending = time.AfterFunc(d, func() {
		t.loop.Post(func() {
			t.mu.Lock()
			stale := t.gen != gen
			if !stale {
				t.pending = nil
			}
			t.mu.Unlock()
			if !stale {
				t.fn()
			}
		})
	})
}

// Cancel drops any pending fire.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Active reports whether a fire is pending.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}
