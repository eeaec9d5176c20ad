package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// binding ties a text pipeline blueprint to an output slot.
type binding struct {
	slot      string
	blueprint stream.Stream[string]
	sub       *stream.Subscription
}

// SubscriptionManager owns the subscriptions of one screen. It activates
// every bound pipeline together and cancels them together.
type SubscriptionManager struct {
	renderer  driven.Renderer
	isolation *ErrorIsolation

	mu       sync.Mutex
	bindings []*binding
	window   context.Context
	cancel   context.CancelFunc
}

// NewSubscriptionManager creates a manager delivering to renderer.
func NewSubscriptionManager(renderer driven.Renderer, isolation *ErrorIsolation) *SubscriptionManager {
	return &SubscriptionManager{
		renderer:  renderer,
		isolation: isolation,
	}
}

// Bind registers a pipeline for the named slot. Binding a slot twice
// replaces the earlier blueprint once the manager is next activated.
func (m *SubscriptionManager) Bind(slot string, blueprint stream.Stream[string]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bindings {
		if b.slot == slot {
			b.blueprint = blueprint
			return
		}
	}
	m.bindings = append(m.bindings, &binding{slot: slot, blueprint: blueprint})
}

// Reset cancels everything and forgets all bindings.
func (m *SubscriptionManager) Reset() {
	m.Deactivate()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings = nil
}

// Activate subscribes every bound pipeline with a fresh subscription built
// from its blueprint. ctx bounds the activation window. Calling Activate
// again inside the same window does nothing: a pipeline that failed or
// finished stays that way until Deactivate, or the end of ctx, closes the
// window.
func (m *SubscriptionManager) Activate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeLocked() {
		logger.Debug("subscriptions: already active")
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.window, m.cancel = context.WithCancel(ctx)

	for _, b := range m.bindings {
		b.sub = m.subscribe(m.window, b)
	}
}

func (m *SubscriptionManager) activeLocked() bool {
	return m.cancel != nil && m.window.Err() == nil
}

func (m *SubscriptionManager) subscribe(ctx context.Context, b *binding) *stream.Subscription {
	id := uuid.NewString()
	slot := b.slot
	logger.Debug("subscriptions: activating %s (%s)", slot, id)

	return b.blueprint.Subscribe(ctx, stream.Observer[string]{
		OnNext: func(text string) {
			m.renderer.Display(slot, text)
		},
		OnError: func(err error) {
			m.isolation.Handle(slot, id, err)
		},
		OnComplete: func() {
			logger.Debug("subscriptions: %s completed", slot)
		},
	}, stream.WithID(id))
}

// Deactivate cancels every active subscription. It is safe to call when
// nothing is active. Once it returns the renderer receives nothing more
// from this manager until the next Activate.
func (m *SubscriptionManager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bindings {
		if b.sub != nil {
			b.sub.Cancel()
		}
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		m.window = nil
		logger.Debug("subscriptions: deactivated")
	}
}

// Active reports whether the manager is inside an activation window.
func (m *SubscriptionManager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeLocked()
}

// States returns the lifecycle state of each bound pipeline by slot.
func (m *SubscriptionManager) States() map[string]domain.SubscriptionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := make(map[string]domain.SubscriptionState, len(m.bindings))
	for _, b := range m.bindings {
		if b.sub == nil {
			states[b.slot] = domain.StateUnsubscribed
			continue
		}
		states[b.slot] = b.sub.State()
	}
	return states
}
