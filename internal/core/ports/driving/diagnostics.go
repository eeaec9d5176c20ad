package driving

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// DiagnosticsService exposes recorded pipeline failures.
type DiagnosticsService interface {
	// Recent returns up to limit diagnostics, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.Diagnostic, error)
}
