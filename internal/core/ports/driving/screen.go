package driving

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// Screen is the activation boundary driven by the UI layer.
type Screen interface {
	// OnCreate builds the stream blueprints. No work starts yet.
	OnCreate(ctx context.Context) error

	// OnStart subscribes every bound pipeline.
	// ctx bounds the activation window; cancelling it behaves like OnStop.
	OnStart(ctx context.Context) error

	// OnStop cancels every active subscription. Safe to call when nothing
	// is active. No delivery reaches the renderer after it returns.
	OnStop()

	// States reports the lifecycle state of each pipeline by slot name.
	States() map[string]domain.SubscriptionState
}
