package domain

import (
	"strconv"
	"time"
)

// Position is a single location fix.
type Position struct {
	// Latitude in decimal degrees (WGS 84).
	Latitude float64

	// Longitude in decimal degrees (WGS 84).
	Longitude float64

	// Accuracy is the estimated horizontal accuracy in metres.
	// Zero means the provider did not report one.
	Accuracy float64

	// Time is when the fix was taken. Zero if unknown.
	Time time.Time
}

// HasAccuracy returns true if the provider reported an accuracy radius.
func (p Position) HasAccuracy() bool {
	return p.Accuracy > 0
}

// String renders the position without locale-dependent formatting.
// The output looks like "52.229676 21.012229 (4.5m)".
func (p Position) String() string {
	buf := make([]byte, 0, 48)
	buf = strconv.AppendFloat(buf, p.Latitude, 'f', 6, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, p.Longitude, 'f', 6, 64)
	if p.HasAccuracy() {
		buf = append(buf, " ("...)
		buf = strconv.AppendFloat(buf, p.Accuracy, 'f', 1, 64)
		buf = append(buf, "m)"...)
	}
	return string(buf)
}

// AccuracyTier selects the power/accuracy trade-off for location updates.
type AccuracyTier string

// Available accuracy tiers.
const (
	// AccuracyHigh requests the most precise fixes available.
	AccuracyHigh AccuracyTier = "high_accuracy"

	// AccuracyBalanced trades some precision for battery life.
	AccuracyBalanced AccuracyTier = "balanced"

	// AccuracyLowPower requests coarse fixes only.
	AccuracyLowPower AccuracyTier = "low_power"
)

// IsValid returns true if the tier is recognised.
func (t AccuracyTier) IsValid() bool {
	switch t {
	case AccuracyHigh, AccuracyBalanced, AccuracyLowPower:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t AccuracyTier) String() string {
	return string(t)
}

// Description returns a human-readable description.
func (t AccuracyTier) Description() string {
	switch t {
	case AccuracyHigh:
		return "High accuracy (GPS)"
	case AccuracyBalanced:
		return "Balanced (city block)"
	case AccuracyLowPower:
		return "Low power (coarse)"
	default:
		return "Unknown"
	}
}

// AllAccuracyTiers returns every tier, most precise first.
func AllAccuracyTiers() []AccuracyTier {
	return []AccuracyTier{AccuracyHigh, AccuracyBalanced, AccuracyLowPower}
}

// UnboundedUpdates marks a LocationRequest with no update limit.
const UnboundedUpdates = 0

// LocationRequest configures a continuous location stream.
type LocationRequest struct {
	// Accuracy is the requested accuracy tier.
	Accuracy AccuracyTier

	// MaxUpdates caps the number of fixes delivered.
	// UnboundedUpdates (0) means no cap.
	MaxUpdates int

	// MinInterval is the minimum time between two fixes.
	MinInterval time.Duration
}

// Unbounded returns true if the request has no update cap.
func (r LocationRequest) Unbounded() bool {
	return r.MaxUpdates == UnboundedUpdates
}
