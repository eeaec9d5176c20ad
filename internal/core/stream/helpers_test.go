package stream

import (
	"context"
	"sync"
)

// recorder collects the events delivered to an Observer.
type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	errs      []error
	completed int
}

func (r *recorder[T]) observer() Observer[T] {
	return Observer[T]{
		OnNext: func(v T) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.values = append(r.values, v)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		OnComplete: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completed++
		},
	}
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

func (r *recorder[T]) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errs))
	copy(out, r.errs)
	return out
}

func (r *recorder[T]) Completed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

// manualSource is a stream whose sinks are driven by the test.
type manualSource[T any] struct {
	mu    sync.Mutex
	sinks []Sink[T]
	ctxs  []context.Context
}

func (m *manualSource[T]) stream() Stream[T] {
	return Create(func(ctx context.Context, sink Sink[T]) func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.sinks = append(m.sinks, sink)
		m.ctxs = append(m.ctxs, ctx)
		return nil
	})
}

func (m *manualSource[T]) sink(i int) Sink[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sinks[i]
}

func (m *manualSource[T]) ctx(i int) context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctxs[i]
}

func (m *manualSource[T]) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sinks)
}
