package services

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
)

// Ensure DiagnosticsService implements the interface.
var _ driving.DiagnosticsService = (*DiagnosticsService)(nil)

// DiagnosticsService reads recorded pipeline failures.
type DiagnosticsService struct {
	store driven.DiagnosticsStore
}

// NewDiagnosticsService creates a diagnostics service. store may be nil.
func NewDiagnosticsService(store driven.DiagnosticsStore) *DiagnosticsService {
	return &DiagnosticsService{store: store}
}

// Recent returns up to limit diagnostics, most recent first.
func (s *DiagnosticsService) Recent(ctx context.Context, limit int) ([]domain.Diagnostic, error) {
	if s.store == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.Recent(ctx, limit)
}
