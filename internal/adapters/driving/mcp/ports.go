package mcp

import (
	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
)

// StateReporter reports the lifecycle state of each pipeline.
type StateReporter interface {
	States() map[string]domain.SubscriptionState
}

// SnapshotReader exposes the latest rendered values.
type SnapshotReader interface {
	State() render.State
}

// Ports aggregates all interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Snapshot is the renderer the dashboard delivers to.
	Snapshot SnapshotReader

	// Screen reports pipeline states.
	Screen StateReporter

	// Slots lists slot names in display order. Optional; snapshot keys
	// are listed alphabetically when empty.
	Slots []string

	// Diagnostics exposes recorded pipeline failures. Optional.
	Diagnostics driving.DiagnosticsService

	// Settings exposes the effective settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Snapshot == nil {
		return ErrMissingSnapshot
	}
	if p.Screen == nil {
		return ErrMissingScreen
	}
	return nil
}
