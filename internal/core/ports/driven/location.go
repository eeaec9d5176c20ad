package driven

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// LocationProvider is the platform location service.
// A single provider handle is shared by every pipeline.
type LocationProvider interface {
	// LastKnown returns the most recent fix the platform holds.
	// The boolean is false when no fix exists yet; that is not an error.
	// Returns domain.ErrProviderUnavailable if the service is disabled.
	LastKnown(ctx context.Context) (domain.Position, bool, error)

	// RequestUpdates registers a listener for continuous fixes.
	// onFix and onError may be called from any goroutine, but never
	// concurrently for the same registration. The returned unregister
	// function stops delivery; it is safe to call more than once.
	// Returns domain.ErrProviderUnavailable if registration is refused.
	RequestUpdates(
		req domain.LocationRequest,
		onFix func(domain.Position),
		onError func(error),
	) (unregister func(), err error)
}
