package domain

import "errors"

// Domain errors represent provider and pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Provider Errors.

	// ErrProviderUnavailable indicates the platform service is missing or disabled.
	// It terminates the pipeline that hit it, and only that pipeline.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrTransientProvider indicates a single emission attempt failed.
	// The stream may try again on its next upstream trigger.
	ErrTransientProvider = errors.New("transient provider failure")

	// ErrStagePanic indicates a pipeline stage panicked and was recovered.
	ErrStagePanic = errors.New("pipeline stage panicked")
)

// IsTransient reports whether err is a transient provider failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientProvider)
}
