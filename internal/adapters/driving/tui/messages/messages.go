// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import "time"

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDashboard shows the live slots.
	ViewDashboard ViewType = iota
	// ViewGeofencing is the secondary geofencing screen.
	ViewGeofencing
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewGeofencing:
		return "geofencing"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Tick triggers a refresh from the snapshot renderer.
type Tick struct {
	Time time.Time
}

// ScreenStarted reports the result of activating the dashboard.
type ScreenStarted struct {
	Err error
}

// ConfigChanged signals that the configuration file was edited.
type ConfigChanged struct{}

// ScreenRestarted reports the result of a configuration reload.
type ScreenRestarted struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
