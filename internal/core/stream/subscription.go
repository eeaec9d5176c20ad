package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// Subscription is a live, cancellable activation of a Stream.
type Subscription struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state domain.SubscriptionState
	err   error
}

// SubscribeOption customises a subscription.
type SubscribeOption func(*Subscription)

// WithID sets the subscription identifier instead of generating one.
// Useful when the identifier must be known before events can arrive.
func WithID(id string) SubscribeOption {
	return func(s *Subscription) {
		if id != "" {
			s.id = id
		}
	}
}

// Subscribe activates the stream. Events reach o until the stream
// terminates, the subscription is cancelled, or ctx is done.
//
// The returned Subscription is already Active. A panic in o is recovered
// and treated as a stream error.
func (s Stream[T]) Subscribe(ctx context.Context, o Observer[T], opts ...SubscribeOption) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
		state:  domain.StateActive,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(sub)
		}
	}
	context.AfterFunc(ctx, sub.markCancelled)

	s.subscribe(ctx, &boundary[T]{sub: sub, observer: o})
	return sub
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// State returns the current lifecycle state.
func (s *Subscription) State() domain.SubscriptionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateActive && s.ctx.Err() != nil {
		return domain.StateCancelled
	}
	return s.state
}

// Err returns the error that terminated the subscription, if any.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed once the subscription can no longer deliver.
func (s *Subscription) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Cancel stops all work started by the subscription. It is idempotent,
// and once it returns the observer receives nothing further.
func (s *Subscription) Cancel() {
	s.markCancelled()
	s.cancel()
}

func (s *Subscription) markCancelled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateActive {
		s.state = domain.StateCancelled
	}
}

// boundary is the terminal sink of a subscription. Holding the
// subscription lock while delivering is what makes Cancel a hard stop.
type boundary[T any] struct {
	sub      *Subscription
	observer Observer[T]
}

func (b *boundary[T]) active() bool {
	return b.sub.state == domain.StateActive && b.sub.ctx.Err() == nil
}

func (b *boundary[T]) Next(v T) {
	b.sub.mu.Lock()
	if !b.active() {
		b.sub.mu.Unlock()
		return
	}
	err := deliver(func() { b.observer.Next(v) })
	b.sub.mu.Unlock()
	if err != nil {
		b.Error(err)
	}
}

func (b *boundary[T]) Error(err error) {
	b.sub.mu.Lock()
	if !b.active() {
		b.sub.mu.Unlock()
		return
	}
	b.sub.state = domain.StateCancelled
	b.sub.err = err
	_ = deliver(func() { b.observer.Error(err) })
	b.sub.mu.Unlock()
	b.sub.cancel()
}

func (b *boundary[T]) Complete() {
	b.sub.mu.Lock()
	if !b.active() {
		b.sub.mu.Unlock()
		return
	}
	b.sub.state = domain.StateCompleted
	_ = deliver(b.observer.Complete)
	b.sub.mu.Unlock()
	b.sub.cancel()
}

func deliver(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", domain.ErrStagePanic, r)
		}
	}()
	fn()
	return nil
}
