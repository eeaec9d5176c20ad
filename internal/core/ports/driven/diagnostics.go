package driven

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// DiagnosticsStore keeps records of terminal pipeline failures.
type DiagnosticsStore interface {
	// Record stores a diagnostic.
	Record(ctx context.Context, d domain.Diagnostic) error

	// Recent returns up to limit diagnostics, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.Diagnostic, error)
}
