// Package eventloop provides the single-threaded dispatch queue the
// window core runs on. Handlers posted to the loop run strictly after
// the task that posted them completes, which keeps geometry reads out
// of mid-transition event handling.
package eventloop

import "sync"

// Loop is a single-goroutine task queue. All window state lives on the
// loop; anything that touches it must be posted here.
type Loop struct {
	tasks chan func()

	mu      sync.Mutex
	quit    chan struct{}
	stopped bool
}

// New creates a loop. Run must be called for posted tasks to execute.
func New() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		quit:  make(chan struct{}),
	}
}

// Run processes tasks until Stop is called. It blocks; callers own the
// goroutine it runs on.
func (l *Loop) Run() {
	for {
		select {
		case task := <-l.tasks:
			task()
		case <-l.quit:
			// Drain whatever is already queued before returning.
			for {
				select {
				case task := <-l.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Post queues a task for execution on the loop goroutine. It never
// runs the task inline, even when called from the loop itself: the
// task runs after the current handler returns. Posting to a stopped
// loop drops the task.
func (l *Loop) Post(task func()) {
	select {
	case <-l.quit:
		return
	default:
	}
	select {
	case l.tasks <- task:
	case <-l.quit:
	}
}

// Stop makes Run return after draining queued tasks. Safe to call
// more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.quit)
	}
}
