package stream

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/logger"
)

// Loop is a UI-affine scheduler: every task runs on the single goroutine
// that called Start, in the order it was scheduled.
type Loop struct {
	name string

	mu      sync.Mutex
	running bool
	stopped bool
	pending []func()
	wake    chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewLoop creates a loop. Tasks scheduled before Start are kept and run
// once the loop starts.
func NewLoop(name string) *Loop {
	return &Loop{
		name:   name,
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// ErrLoopStarted is returned by Start on a loop that was already started.
var ErrLoopStarted = errors.New("loop already started")

// Start runs queued tasks on the calling goroutine. It blocks until Stop
// is called or ctx is done, and returns ctx.Err() in the latter case. A
// loop runs at most once: Start on a loop that was stopped before it ever
// ran returns nil at once, and a second Start returns ErrLoopStarted
// without blocking.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopStarted
	}
	l.running = true
	stopped := l.stopped
	l.mu.Unlock()

	defer close(l.doneCh)
	if stopped {
		return nil
	}
	logger.Debug("loop %s: started", l.name)

	for {
		l.runPending()

		select {
		case <-ctx.Done():
			l.halt()
			return ctx.Err()
		case <-l.stopCh:
			return nil
		case <-l.wake:
		}
	}
}

// Stop halts the loop and drops tasks that have not run yet. It does not
// wait for the task in progress, so it is safe to call from a task; use
// Done to wait for Start to return.
func (l *Loop) Stop() {
	l.halt()
}

// Done is closed when Start returns.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

// halt marks the loop stopped.
func (l *Loop) halt() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	l.pending = nil
	close(l.stopCh)
	logger.Debug("loop %s: stopped", l.name)
}

// Schedule implements Scheduler. Tasks are refused once the loop has
// stopped; tasks still queued when it stops are dropped.
func (l *Loop) Schedule(ctx context.Context, task func()) bool {
	if ctx.Err() != nil {
		return false
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, func() {
		if ctx.Err() == nil {
			task()
		}
	})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// runPending drains the queue in FIFO order.
func (l *Loop) runPending() {
	for {
		l.mu.Lock()
		if l.stopped || len(l.pending) == 0 {
			l.mu.Unlock()
			return
		}
		task := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()

		task()
	}
}
