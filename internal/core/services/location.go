package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// LocationSource exposes a LocationProvider as streams.
type LocationSource struct {
	provider driven.LocationProvider
}

// NewLocationSource creates a location source over the shared provider.
func NewLocationSource(provider driven.LocationProvider) *LocationSource {
	return &LocationSource{provider: provider}
}

// LastKnown is a single-shot stream of the most recent fix. It completes
// empty when the platform holds no fix yet.
func (s *LocationSource) LastKnown() stream.Stream[domain.Position] {
	return stream.Create(func(ctx context.Context, sink stream.Sink[domain.Position]) func() {
		pos, ok, err := s.provider.LastKnown(ctx)
		if err != nil {
			sink.Error(fmt.Errorf("last known location: %w", err))
			return nil
		}
		if ok {
			sink.Next(pos)
		} else {
			logger.Debug("location: no last known fix")
		}
		sink.Complete()
		return nil
	})
}

// Updates is a continuous stream of fixes. The listener is registered on
// subscribe and unregistered exactly once when the subscription ends.
// A request with MaxUpdates completes after that many fixes.
func (s *LocationSource) Updates(req domain.LocationRequest) stream.Stream[domain.Position] {
	updates := stream.Create(func(_ context.Context, sink stream.Sink[domain.Position]) func() {
		unregister, err := s.provider.RequestUpdates(req, sink.Next, sink.Error)
		if err != nil {
			sink.Error(fmt.Errorf("requesting location updates: %w", err))
			return nil
		}
		logger.Debug("location: registered for updates (%s, every %s)", req.Accuracy, req.MinInterval)
		return func() {
			unregister()
			logger.Debug("location: unregistered")
		}
	})
	if req.Unbounded() {
		return updates
	}
	return stream.Take(updates, req.MaxUpdates)
}
