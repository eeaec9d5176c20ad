package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/logger"
)

// ErrorNotification is the user-visible text shown when a pipeline fails.
const ErrorNotification = "Error occurred."

// ErrorIsolation handles a terminal pipeline error at its subscription
// boundary so it never reaches sibling pipelines. Each handled error
// produces one notification and one diagnostic record. Nothing is retried.
type ErrorIsolation struct {
	renderer driven.Renderer
	store    driven.DiagnosticsStore
	now      func() time.Time
}

// NewErrorIsolation creates the error boundary. store may be nil.
func NewErrorIsolation(renderer driven.Renderer, store driven.DiagnosticsStore) *ErrorIsolation {
	return &ErrorIsolation{
		renderer: renderer,
		store:    store,
		now:      time.Now,
	}
}

// Handle records and reports a terminal error of one pipeline.
func (e *ErrorIsolation) Handle(pipeline, subscriptionID string, err error) {
	logger.Error("pipeline %s (%s) failed: %v", pipeline, subscriptionID, err)

	if e.store != nil {
		d := domain.Diagnostic{
			ID:             uuid.NewString(),
			Pipeline:       pipeline,
			SubscriptionID: subscriptionID,
			Error:          err.Error(),
			OccurredAt:     e.now(),
		}
		if recordErr := e.store.Record(context.Background(), d); recordErr != nil {
			logger.Warn("diagnostics: failed to record failure of %s: %v", pipeline, recordErr)
		}
	}

	e.renderer.NotifyError(ErrorNotification)
}
