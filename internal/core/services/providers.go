package services

import (
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Providers is the single provider handle shared by every pipeline.
// It is built once at startup and never mutated.
type Providers struct {
	Location driven.LocationProvider
	Motion   driven.ActivityRecognizer
	Geocoder driven.Geocoder
}

// Validate ensures all providers are set.
func (p Providers) Validate() error {
	if p.Location == nil {
		return ErrMissingLocationProvider
	}
	if p.Motion == nil {
		return ErrMissingActivityRecognizer
	}
	if p.Geocoder == nil {
		return ErrMissingGeocoder
	}
	return nil
}
