package stream

import (
	"context"
	"sync"
)

// tracker counts the work still running for one activation: producers
// that have not returned or torn down, and scheduled subscriptions that
// have not finished. Once armed, onIdle runs the first time the count
// reaches zero.
//
// A tracker also counts everything held on the trackers nested inside it.
type tracker struct {
	parent *tracker
	onIdle func()

	mu    sync.Mutex
	held  int
	armed bool
	fired bool
}

type trackerKey struct{}

func newTracker(parent *tracker, onIdle func()) *tracker {
	return &tracker{parent: parent, onIdle: onIdle}
}

func withTracker(ctx context.Context, t *tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

func trackerFrom(ctx context.Context) *tracker {
	t, _ := ctx.Value(trackerKey{}).(*tracker)
	return t
}

// hold marks work started under ctx. The returned release may be called
// more than once; only the first call counts.
func hold(ctx context.Context) (release func()) {
	t := trackerFrom(ctx)
	if t == nil {
		return func() {}
	}
	for c := t; c != nil; c = c.parent {
		c.mu.Lock()
		c.held++
		c.mu.Unlock()
	}
	return sync.OnceFunc(func() {
		for c := t; c != nil; c = c.parent {
			c.done()
		}
	})
}

// arm allows onIdle to run. Work held while the activation is still being
// subscribed never fires it early.
func (t *tracker) arm() {
	t.mu.Lock()
	t.armed = true
	fire := t.idleLocked()
	t.mu.Unlock()
	if fire {
		t.onIdle()
	}
}

func (t *tracker) done() {
	t.mu.Lock()
	t.held--
	fire := t.idleLocked()
	t.mu.Unlock()
	if fire {
		t.onIdle()
	}
}

func (t *tracker) idleLocked() bool {
	if !t.armed || t.fired || t.held > 0 {
		return false
	}
	t.fired = true
	return t.onIdle != nil
}
