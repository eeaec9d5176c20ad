package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// Map applies f to every value. A panic in f terminates the stream with
// an error wrapping domain.ErrStagePanic.
func Map[T, U any](s Stream[T], f func(T) U) Stream[U] {
	return Enumerate(s, func(v T, _ int) U { return f(v) })
}

// Enumerate applies f to every value together with its index. The index
// is owned by the subscription: it starts at 0 on every Subscribe and is
// never shared between subscriptions.
func Enumerate[T, U any](s Stream[T], f func(T, int) U) Stream[U] {
	return Stream[U]{subscribe: func(ctx context.Context, sink Sink[U]) {
		index := 0
		stopped := false
		s.subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				if stopped {
					return
				}
				u, err := apply(func() U { return f(v, index) })
				if err != nil {
					stopped = true
					sink.Error(err)
					return
				}
				index++
				sink.Next(u)
			},
			OnError: func(err error) {
				if !stopped {
					stopped = true
					sink.Error(err)
				}
			},
			OnComplete: func() {
				if !stopped {
					stopped = true
					sink.Complete()
				}
			},
		})
	}}
}

func apply[U any](fn func() U) (u U, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrStagePanic, r)
		}
	}()
	return fn(), nil
}

// Take completes after n values and cancels the upstream.
func Take[T any](s Stream[T], n int) Stream[T] {
	return Stream[T]{subscribe: func(parent context.Context, sink Sink[T]) {
		if n <= 0 {
			sink.Complete()
			return
		}
		ctx, cancel := context.WithCancel(parent)
		count := 0
		stopped := false
		s.subscribe(ctx, Observer[T]{
			OnNext: func(v T) {
				if stopped {
					return
				}
				count++
				sink.Next(v)
				if count >= n {
					stopped = true
					sink.Complete()
					cancel()
				}
			},
			OnError: func(err error) {
				if !stopped {
					stopped = true
					sink.Error(err)
				}
			},
			OnComplete: func() {
				if !stopped {
					stopped = true
					sink.Complete()
				}
			},
		})
	}}
}

// Recover turns errors matching match into completion of the stream.
// handle, if non-nil, is told about each swallowed error.
func Recover[T any](s Stream[T], match func(error) bool, handle func(error)) Stream[T] {
	return Stream[T]{subscribe: func(ctx context.Context, sink Sink[T]) {
		s.subscribe(ctx, Observer[T]{
			OnNext: sink.Next,
			OnError: func(err error) {
				if !match(err) {
					sink.Error(err)
					return
				}
				if handle != nil {
					handle(err)
				}
				sink.Complete()
			},
			OnComplete: sink.Complete,
		})
	}}
}

// SwitchMap maps every upstream value to an inner stream and forwards the
// inner values. A new upstream value cancels the inner stream in flight
// and discards its results. The replacement is not subscribed until the
// superseded inner stream has stopped running (its producer returned and
// its teardown ran), so at most one inner stream is ever at work. Values
// that arrive while one is stopping replace each other; only the latest is
// subscribed.
//
// The result completes when the upstream and the last inner stream have
// both completed. An error from either side terminates it.
func SwitchMap[T, U any](s Stream[T], f func(T) Stream[U]) Stream[U] {
	return Stream[U]{subscribe: func(ctx context.Context, sink Sink[U]) {
		sw := &switcher[T, U]{ctx: ctx, sink: sink, project: f}
		s.subscribe(ctx, Observer[T]{
			OnNext:     sw.push,
			OnError:    func(err error) { sw.fail(0, err) },
			OnComplete: sw.outerDone,
		})
	}}
}

// switcher holds the state shared by the outer and inner subscriptions
// of one SwitchMap activation.
type switcher[T, U any] struct {
	ctx     context.Context
	sink    Sink[U]
	project func(T) Stream[U]

	mu          sync.Mutex
	gen         uint64
	cancelInner context.CancelFunc
	live        bool // the inner stream of gen has not terminated
	busy        bool // the latest inner stream is still running
	pending     T
	hasPending  bool
	outerEnded  bool
	stopped     bool
}

func (w *switcher[T, U]) push(v T) {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.supersede()
	if w.busy {
		w.pending, w.hasPending = v, true
		w.mu.Unlock()
		return
	}
	ctx, gen, t := w.begin()
	w.mu.Unlock()
	w.run(v, ctx, gen, t)
}

// supersede cancels the current inner stream and discards anything it
// still delivers. Caller holds mu.
func (w *switcher[T, U]) supersede() {
	if w.cancelInner != nil {
		w.cancelInner()
		w.cancelInner = nil
	}
	w.gen++
	w.live = false
}

// begin reserves the inner slot for a new generation. Caller holds mu.
func (w *switcher[T, U]) begin() (context.Context, uint64, *tracker) {
	w.gen++
	gen := w.gen
	ctx, cancel := context.WithCancel(w.ctx)
	w.cancelInner = cancel
	w.live = true
	w.busy = true
	t := newTracker(trackerFrom(w.ctx), w.settled)
	return withTracker(ctx, t), gen, t
}

func (w *switcher[T, U]) run(v T, ctx context.Context, gen uint64, t *tracker) {
	defer t.arm()
	inner, err := apply(func() Stream[U] { return w.project(v) })
	if err != nil {
		w.fail(gen, err)
		return
	}
	inner.subscribe(ctx, Observer[U]{
		OnNext:     func(u U) { w.emit(gen, u) },
		OnError:    func(err error) { w.fail(gen, err) },
		OnComplete: func() { w.innerDone(gen) },
	})
}

// settled runs once the latest inner stream has stopped running. A value
// that arrived meanwhile is subscribed now.
func (w *switcher[T, U]) settled() {
	w.mu.Lock()
	w.busy = false
	if !w.hasPending {
		w.mu.Unlock()
		return
	}
	v := w.pending
	var zero T
	w.pending, w.hasPending = zero, false
	if w.stopped || w.ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	ctx, gen, t := w.begin()
	w.mu.Unlock()
	w.run(v, ctx, gen, t)
}

func (w *switcher[T, U]) emit(gen uint64, u U) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || gen != w.gen {
		return
	}
	w.sink.Next(u)
}

// fail terminates the switch. gen 0 is the outer stream.
func (w *switcher[T, U]) fail(gen uint64, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || (gen != 0 && gen != w.gen) {
		return
	}
	w.stopped = true
	if w.cancelInner != nil {
		w.cancelInner()
	}
	w.sink.Error(err)
}

func (w *switcher[T, U]) innerDone(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped || gen != w.gen {
		return
	}
	w.live = false
	w.completeIfDone()
}

func (w *switcher[T, U]) outerDone() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.outerEnded = true
	w.completeIfDone()
}

// completeIfDone completes once nothing more can be emitted. Caller
// holds mu.
func (w *switcher[T, U]) completeIfDone() {
	if !w.outerEnded || w.live || w.hasPending {
		return
	}
	w.stopped = true
	if w.cancelInner != nil {
		w.cancelInner()
	}
	w.sink.Complete()
}
