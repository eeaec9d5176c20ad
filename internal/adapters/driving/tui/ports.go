// Package tui provides an interactive terminal dashboard for whereabouts.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
)

// Screen is the dashboard lifecycle the TUI drives.
type Screen interface {
	driving.Screen

	// Restart stops, rebuilds and starts the pipelines with fresh settings.
	Restart(ctx context.Context) error

	// Active reports whether pipelines are subscribed.
	Active() bool
}

// SnapshotReader exposes the latest rendered values.
type SnapshotReader interface {
	State() render.State
	DismissError()
}

// Ports aggregates everything the TUI needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Screen is started when the program starts and stopped when it quits.
	Screen Screen

	// Snapshot is the renderer the pipelines deliver to.
	Snapshot SnapshotReader

	// Slots lists the slot names in display order.
	Slots []string
}

// NewPorts creates a new Ports aggregate.
func NewPorts(screen Screen, snapshot SnapshotReader, slots []string) *Ports {
	return &Ports{
		Screen:   screen,
		Snapshot: snapshot,
		Slots:    slots,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Screen == nil {
		return ErrMissingScreen
	}
	if p.Snapshot == nil {
		return ErrMissingSnapshot
	}
	if len(p.Slots) == 0 {
		return ErrMissingSlots
	}
	return nil
}
