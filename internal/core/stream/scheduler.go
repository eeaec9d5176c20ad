package stream

import (
	"context"
	"sync"
)

// Scheduler runs tasks on an execution context.
type Scheduler interface {
	// Schedule queues task and reports whether it was accepted. It never
	// blocks the caller on the task itself. A task is refused when ctx is
	// already done or the scheduler no longer runs anything, and an
	// accepted task may still be skipped if ctx ends before it starts.
	Schedule(ctx context.Context, task func()) bool
}

// Immediate runs every task synchronously on the calling goroutine.
var Immediate Scheduler = immediate{}

type immediate struct{}

func (immediate) Schedule(ctx context.Context, task func()) bool {
	if ctx.Err() != nil {
		return false
	}
	task()
	return true
}

// IOScheduler runs every task on its own goroutine. It suits I/O-bound
// work that blocks, such as geocoding lookups.
type IOScheduler struct {
	wg sync.WaitGroup
}

// NewIOScheduler creates a background scheduler.
func NewIOScheduler() *IOScheduler {
	return &IOScheduler{}
}

// Schedule implements Scheduler.
func (s *IOScheduler) Schedule(ctx context.Context, task func()) bool {
	if ctx.Err() != nil {
		return false
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		task()
	}()
	return true
}

// Wait blocks until every scheduled task has returned.
func (s *IOScheduler) Wait() {
	s.wg.Wait()
}

// SubscribeOn subscribes to s on sched, so the producer and everything it
// does synchronously runs there. The subscription counts as running from
// the moment it is queued. A task that has not started when ctx ends
// will never start, so it stops counting right away.
func SubscribeOn[T any](s Stream[T], sched Scheduler) Stream[T] {
	return Stream[T]{subscribe: func(ctx context.Context, sink Sink[T]) {
		release := hold(ctx)
		var claim sync.Once
		abandon := context.AfterFunc(ctx, func() { claim.Do(release) })

		accepted := sched.Schedule(ctx, func() {
			started := false
			claim.Do(func() { started = true })
			if !started {
				return
			}
			abandon()
			defer release()
			if ctx.Err() != nil {
				return
			}
			s.subscribe(ctx, sink)
		})
		if !accepted {
			abandon()
			claim.Do(release)
		}
	}}
}

// ObserveOn delivers the events of s on sched, in upstream order, even
// when sched itself runs tasks concurrently. Events still queued when the
// subscription is cancelled are discarded.
func ObserveOn[T any](s Stream[T], sched Scheduler) Stream[T] {
	return Stream[T]{subscribe: func(ctx context.Context, sink Sink[T]) {
		q := &handoff{ctx: ctx, sched: sched}
		s.subscribe(ctx, Observer[T]{
			OnNext:     func(v T) { q.push(func() { sink.Next(v) }) },
			OnError:    func(err error) { q.push(func() { sink.Error(err) }) },
			OnComplete: func() { q.push(sink.Complete) },
		})
	}}
}

// handoff is a per-subscription FIFO drained by at most one task at a time.
type handoff struct {
	ctx   context.Context
	sched Scheduler

	mu       sync.Mutex
	pending  []func()
	draining bool
}

// push queues event and starts a drain unless one is already queued. If
// sched refuses the drain, nothing queued can be delivered any more, so
// the queue is dropped and the next event tries again.
func (h *handoff) push(event func()) {
	h.mu.Lock()
	h.pending = append(h.pending, event)
	if h.draining {
		h.mu.Unlock()
		return
	}
	h.draining = true
	h.mu.Unlock()

	if !h.sched.Schedule(h.ctx, h.drain) {
		h.mu.Lock()
		h.pending = nil
		h.draining = false
		h.mu.Unlock()
	}
}

func (h *handoff) drain() {
	for {
		h.mu.Lock()
		if len(h.pending) == 0 {
			h.draining = false
			h.mu.Unlock()
			return
		}
		event := h.pending[0]
		h.pending[0] = nil
		h.pending = h.pending[1:]
		h.mu.Unlock()

		if h.ctx.Err() != nil {
			continue
		}
		event()
	}
}
