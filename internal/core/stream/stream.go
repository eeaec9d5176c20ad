package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// Sink receives the events of one stream activation.
type Sink[T any] interface {
	Next(v T)
	Error(err error)
	Complete()
}

// Observer is a Sink built from functions. Nil fields ignore the event.
type Observer[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

// Next implements Sink.
func (o Observer[T]) Next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

// Error implements Sink.
func (o Observer[T]) Error(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

// Complete implements Sink.
func (o Observer[T]) Complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

// Stream is a lazily produced sequence of values.
type Stream[T any] struct {
	subscribe func(ctx context.Context, sink Sink[T])
}

// Producer starts the work of one subscription. It registers whatever
// callbacks it needs and returns; a producer that blocks (see FromFunc)
// must be subscribed on a background Scheduler. The returned teardown, if
// non-nil, runs exactly once when the subscription ends.
//
// The activation counts as running until the producer has returned and
// its teardown, if any, has run. SwitchMap waits for that before starting
// the next inner stream.
type Producer[T any] func(ctx context.Context, sink Sink[T]) (teardown func())

// Create builds a stream from a Producer.
func Create[T any](produce Producer[T]) Stream[T] {
	return Stream[T]{subscribe: func(parent context.Context, sink Sink[T]) {
		release := hold(parent)
		ctx, cancel := context.WithCancel(parent)
		g := &guard[T]{ctx: ctx, cancel: cancel, sink: sink}

		teardown, err := runProducer(produce, ctx, g)
		if err != nil {
			g.Error(err)
		}
		if teardown == nil {
			release()
			return
		}
		context.AfterFunc(ctx, func() {
			defer release()
			teardown()
		})
	}}
}

func runProducer[T any](produce Producer[T], ctx context.Context, sink Sink[T]) (teardown func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrStagePanic, r)
		}
	}()
	return produce(ctx, sink), nil
}

// FromFunc builds a single-shot stream from a blocking call. fn runs on
// the subscribing goroutine, so pair it with SubscribeOn.
func FromFunc[T any](fn func(ctx context.Context) (T, error)) Stream[T] {
	return Create(func(ctx context.Context, sink Sink[T]) func() {
		v, err := fn(ctx)
		if err != nil {
			sink.Error(err)
			return nil
		}
		sink.Next(v)
		sink.Complete()
		return nil
	})
}

// Just emits the given values then completes.
func Just[T any](values ...T) Stream[T] {
	return Create(func(_ context.Context, sink Sink[T]) func() {
		for _, v := range values {
			sink.Next(v)
		}
		sink.Complete()
		return nil
	})
}

// Empty completes without emitting.
func Empty[T any]() Stream[T] {
	return Just[T]()
}

// Fail terminates immediately with err.
func Fail[T any](err error) Stream[T] {
	return Create(func(_ context.Context, sink Sink[T]) func() {
		sink.Error(err)
		return nil
	})
}

// guard serialises producer callbacks and enforces the terminal and
// cancellation rules for a single Create activation.
type guard[T any] struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	sink   Sink[T]
	done   bool
}

func (g *guard[T]) Next(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done || g.ctx.Err() != nil {
		return
	}
	g.sink.Next(v)
}

func (g *guard[T]) Error(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done || g.ctx.Err() != nil {
		return
	}
	g.done = true
	g.sink.Error(err)
	g.cancel()
}

func (g *guard[T]) Complete() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.done || g.ctx.Err() != nil {
		return
	}
	g.done = true
	g.sink.Complete()
	g.cancel()
}
