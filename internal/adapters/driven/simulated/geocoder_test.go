package simulated

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

func TestGeocoder_NearestFirst(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{})

	addrs, err := g.ReverseGeocode(context.Background(), 52.229676, 21.012229, 2)

	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, "Aleje Jerozolimskie 44, 00-024 Warszawa", addrs[0].String())
	assert.Equal(t, 1, g.Calls())
}

func TestGeocoder_NothingInRange(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{})

	addrs, err := g.ReverseGeocode(context.Background(), 0, 0, 1)

	require.NoError(t, err)
	assert.Empty(t, addrs)
}

func TestGeocoder_InvalidMaxResults(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{})

	_, err := g.ReverseGeocode(context.Background(), 0, 0, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGeocoder_FailureEvery(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{FailureEvery: 2})
	ctx := context.Background()

	_, err := g.ReverseGeocode(ctx, 52.229676, 21.012229, 1)
	require.NoError(t, err)

	_, err = g.ReverseGeocode(ctx, 52.229676, 21.012229, 1)
	assert.ErrorIs(t, err, domain.ErrTransientProvider)
	assert.True(t, domain.IsTransient(err))

	_, err = g.ReverseGeocode(ctx, 52.229676, 21.012229, 1)
	assert.NoError(t, err)
}

func TestGeocoder_LatencyRespectsContext(t *testing.T) {
	g := NewGeocoder(GeocoderConfig{Latency: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.ReverseGeocode(ctx, 52.229676, 21.012229, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromSettings(t *testing.T) {
	settings := domain.DefaultSettings().Simulation
	settings.LocationUnavailable = true
	settings.GeocodeFailureEvery = 3

	set := FromSettings(settings)

	_, _, err := set.Location.LastKnown(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Equal(t, 3, set.Geocoder.cfg.FailureEvery)
	assert.NotNil(t, set.Motion)
}

func TestDistanceMeters(t *testing.T) {
	assert.InDelta(t, 0, distanceMeters(52, 21, 52, 21), 1e-6)
	// One degree of latitude is roughly 111 km.
	assert.InDelta(t, 111_195, distanceMeters(0, 0, 1, 0), 100)
}
