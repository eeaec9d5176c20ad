package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// MotionSource exposes an ActivityRecognizer as a stream.
type MotionSource struct {
	recognizer driven.ActivityRecognizer
}

// NewMotionSource creates a motion source over the shared recognizer.
func NewMotionSource(recognizer driven.ActivityRecognizer) *MotionSource {
	return &MotionSource{recognizer: recognizer}
}

// DetectedActivity is a continuous stream of classifications.
func (s *MotionSource) DetectedActivity(pollInterval time.Duration) stream.Stream[domain.MotionClassification] {
	return stream.Create(func(_ context.Context, sink stream.Sink[domain.MotionClassification]) func() {
		unregister, err := s.recognizer.RequestActivityUpdates(pollInterval, sink.Next, sink.Error)
		if err != nil {
			sink.Error(fmt.Errorf("requesting activity updates: %w", err))
			return nil
		}
		logger.Debug("motion: registered for activity every %s", pollInterval)
		return func() {
			unregister()
			logger.Debug("motion: unregistered")
		}
	})
}
