package simulated

import (
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

// DefaultLatency is the simulated round trip of a geocoding lookup.
const DefaultLatency = 30 * time.Millisecond

// Set bundles one instance of each simulated provider.
type Set struct {
	Location *LocationProvider
	Motion   *ActivityRecognizer
	Geocoder *Geocoder
}

// FromSettings builds the simulated providers described by settings.
func FromSettings(s domain.SimulationSettings) Set {
	return Set{
		Location: NewLocationProvider(LocationConfig{
			Latitude:    s.Latitude,
			Longitude:   s.Longitude,
			Unavailable: s.LocationUnavailable,
		}),
		Motion: NewActivityRecognizer(MotionConfig{}),
		Geocoder: NewGeocoder(GeocoderConfig{
			Latency:      DefaultLatency,
			FailureEvery: s.GeocodeFailureEvery,
		}),
	}
}
