package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/stream"
)

// GeocodingSource exposes a Geocoder as single-shot streams.
type GeocodingSource struct {
	geocoder driven.Geocoder
}

// NewGeocodingSource creates a geocoding source over the shared geocoder.
func NewGeocodingSource(geocoder driven.Geocoder) *GeocodingSource {
	return &GeocodingSource{geocoder: geocoder}
}

// ReverseGeocode is a single-shot lookup issued once per subscription.
// The lookup blocks the subscribing goroutine; subscribe it on a
// background scheduler.
func (s *GeocodingSource) ReverseGeocode(lat, lon float64, maxResults int) stream.Stream[domain.AddressCandidates] {
	return stream.FromFunc(func(ctx context.Context) (domain.AddressCandidates, error) {
		addrs, err := s.geocoder.ReverseGeocode(ctx, lat, lon, maxResults)
		if err != nil {
			return nil, fmt.Errorf("reverse geocode %.6f,%.6f: %w", lat, lon, err)
		}
		return addrs, nil
	})
}
