package tui

import "errors"

// ErrMissingScreen is returned when the dashboard screen is not provided.
var ErrMissingScreen = errors.New("tui: screen is required")

// ErrMissingSnapshot is returned when the snapshot renderer is not provided.
var ErrMissingSnapshot = errors.New("tui: snapshot renderer is required")

// ErrMissingSlots is returned when no slots are configured.
var ErrMissingSlots = errors.New("tui: at least one slot is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
