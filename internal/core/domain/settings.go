package domain

import (
	"fmt"
	"time"
)

// GeocoderKind selects the reverse-geocoding backend.
type GeocoderKind string

// Available geocoders.
const (
	// GeocoderSimulated resolves addresses from a built-in table.
	GeocoderSimulated GeocoderKind = "simulated"

	// GeocoderNominatim queries an OpenStreetMap Nominatim server.
	GeocoderNominatim GeocoderKind = "nominatim"
)

// IsValid returns true if the geocoder kind is recognised.
func (k GeocoderKind) IsValid() bool {
	return k == GeocoderSimulated || k == GeocoderNominatim
}

// Description returns a human-readable description.
func (k GeocoderKind) Description() string {
	switch k {
	case GeocoderSimulated:
		return "Simulated (built-in places)"
	case GeocoderNominatim:
		return "Nominatim (OpenStreetMap)"
	default:
		return "Unknown"
	}
}

// AllGeocoders returns every geocoder kind.
func AllGeocoders() []GeocoderKind {
	return []GeocoderKind{GeocoderSimulated, GeocoderNominatim}
}

// Settings holds the provider configuration exposed to callers.
type Settings struct {
	Location   LocationSettings
	Geocoding  GeocodingSettings
	Motion     MotionSettings
	Simulation SimulationSettings
}

// LocationSettings configures the continuous location stream.
type LocationSettings struct {
	Accuracy AccuracyTier

	// MaxUpdates is UnboundedUpdates (0) or a positive cap.
	MaxUpdates int

	// Interval is the minimum time between fixes. Non-negative.
	Interval time.Duration
}

// GeocodingSettings configures reverse geocoding.
type GeocodingSettings struct {
	Provider GeocoderKind

	// MaxResults is the number of candidates requested. Positive.
	MaxResults int

	// BaseURL is the Nominatim endpoint. Ignored by the simulated geocoder.
	BaseURL string
}

// MotionSettings configures activity recognition.
type MotionSettings struct {
	// PollInterval is the time between classifications. Positive.
	PollInterval time.Duration
}

// SimulationSettings drives the simulated providers.
type SimulationSettings struct {
	// Latitude and Longitude are the starting point of the simulated track.
	Latitude  float64
	Longitude float64

	// LocationUnavailable makes the location provider refuse registration.
	LocationUnavailable bool

	// GeocodeFailureEvery makes every Nth lookup fail transiently. 0 disables.
	GeocodeFailureEvery int
}

// Request converts the location settings into a LocationRequest.
func (s LocationSettings) Request() LocationRequest {
	return LocationRequest{
		Accuracy:    s.Accuracy,
		MaxUpdates:  s.MaxUpdates,
		MinInterval: s.Interval,
	}
}

// DefaultNominatimURL is the public OpenStreetMap Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// DefaultSettings returns the defaults: five high-accuracy fixes 100ms apart,
// one address candidate, and an activity classification every 50ms.
func DefaultSettings() Settings {
	return Settings{
		Location: LocationSettings{
			Accuracy:   AccuracyHigh,
			MaxUpdates: 5,
			Interval:   100 * time.Millisecond,
		},
		Geocoding: GeocodingSettings{
			Provider:   GeocoderSimulated,
			MaxResults: 1,
			BaseURL:    DefaultNominatimURL,
		},
		Motion: MotionSettings{
			PollInterval: 50 * time.Millisecond,
		},
		Simulation: SimulationSettings{
			Latitude:  52.229676,
			Longitude: 21.012229,
		},
	}
}

// Validate checks the settings against the allowed ranges.
func (s Settings) Validate() error {
	if !s.Location.Accuracy.IsValid() {
		return fmt.Errorf("%w: unknown accuracy tier %q", ErrInvalidInput, s.Location.Accuracy)
	}
	if s.Location.MaxUpdates < 0 {
		return fmt.Errorf("%w: max updates must be positive or 0 for unbounded", ErrInvalidInput)
	}
	if s.Location.Interval < 0 {
		return fmt.Errorf("%w: location interval must not be negative", ErrInvalidInput)
	}
	if !s.Geocoding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown geocoder %q", ErrInvalidInput, s.Geocoding.Provider)
	}
	if s.Geocoding.MaxResults <= 0 {
		return fmt.Errorf("%w: geocoding max results must be positive", ErrInvalidInput)
	}
	if s.Motion.PollInterval <= 0 {
		return fmt.Errorf("%w: motion poll interval must be positive", ErrInvalidInput)
	}
	if s.Simulation.GeocodeFailureEvery < 0 {
		return fmt.Errorf("%w: geocode failure period must not be negative", ErrInvalidInput)
	}
	return nil
}
