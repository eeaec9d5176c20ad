package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure DiagnosticsStore implements the interface.
var _ driven.DiagnosticsStore = (*DiagnosticsStore)(nil)

// DefaultDiagnosticsCapacity bounds the number of retained diagnostics.
const DefaultDiagnosticsCapacity = 100

// DiagnosticsStore keeps the most recent pipeline failures in memory.
// Older entries are evicted once capacity is reached.
type DiagnosticsStore struct {
	mu       sync.RWMutex
	entries  []domain.Diagnostic
	capacity int
}

// NewDiagnosticsStore creates a store retaining up to capacity entries.
// A non-positive capacity uses DefaultDiagnosticsCapacity.
func NewDiagnosticsStore(capacity int) *DiagnosticsStore {
	if capacity <= 0 {
		capacity = DefaultDiagnosticsCapacity
	}
	return &DiagnosticsStore{capacity: capacity}
}

// Record stores a diagnostic.
func (s *DiagnosticsStore) Record(_ context.Context, d domain.Diagnostic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, d)
	if over := len(s.entries) - s.capacity; over > 0 {
		s.entries = append([]domain.Diagnostic(nil), s.entries[over:]...)
	}
	return nil
}

// Recent returns up to limit diagnostics, most recent first.
func (s *DiagnosticsStore) Recent(_ context.Context, limit int) ([]domain.Diagnostic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	result := make([]domain.Diagnostic, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}
