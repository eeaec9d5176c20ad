package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
)

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewGeocoder(Config{BaseURL: server.URL, RequestsPerSecond: 1000})
}

func TestGeocoder_ReverseGeocode(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "52.229676", r.URL.Query().Get("lat"))
		assert.Equal(t, "21.012229", r.URL.Query().Get("lon"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"display_name": "44, Aleje Jerozolimskie, Warszawa, Polska",
			"address": {
				"house_number": "44",
				"road": "Aleje Jerozolimskie",
				"city": "Warszawa",
				"postcode": "00-024",
				"country": "Polska",
				"country_code": "pl"
			}
		}`))
	})

	addrs, err := g.ReverseGeocode(context.Background(), 52.229676, 21.012229, 3)

	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, []string{"Aleje Jerozolimskie 44", "00-024 Warszawa"}, addrs[0].Lines)
	assert.Equal(t, "Warszawa", addrs[0].Locality)
	assert.Equal(t, "PL", addrs[0].CountryCode)
}

func TestGeocoder_UnableToGeocode(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	})

	addrs, err := g.ReverseGeocode(context.Background(), 0, 0, 1)

	require.NoError(t, err)
	assert.Empty(t, addrs)
}

func TestGeocoder_DisplayNameFallback(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"display_name": "Somewhere remote", "address": {}}`))
	})

	addrs, err := g.ReverseGeocode(context.Background(), 1, 1, 1)

	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, "Somewhere remote", addrs[0].String())
}

func TestGeocoder_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		transient bool
	}{
		{"server error", http.StatusInternalServerError, true},
		{"unavailable", http.StatusServiceUnavailable, true},
		{"throttled", http.StatusTooManyRequests, true},
		{"bad request", http.StatusBadRequest, false},
		{"forbidden", http.StatusForbidden, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			_, err := g.ReverseGeocode(context.Background(), 1, 1, 1)

			require.Error(t, err)
			assert.Equal(t, tt.transient, domain.IsTransient(err))
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestGeocoder_MalformedBody(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := g.ReverseGeocode(context.Background(), 1, 1, 1)

	require.Error(t, err)
	assert.False(t, domain.IsTransient(err))
}

func TestGeocoder_ConnectionFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()
	g := NewGeocoder(Config{BaseURL: server.URL, RequestsPerSecond: 1000})

	_, err := g.ReverseGeocode(context.Background(), 1, 1, 1)

	assert.True(t, domain.IsTransient(err))
}

func TestGeocoder_CancelledContext(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.ReverseGeocode(ctx, 1, 1, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeocoder_InvalidMaxResults(t *testing.T) {
	g := NewGeocoder(Config{})

	_, err := g.ReverseGeocode(context.Background(), 1, 1, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewGeocoder_Defaults(t *testing.T) {
	g := NewGeocoder(Config{BaseURL: "http://example.test/"})

	assert.Equal(t, "http://example.test", g.baseURL)
	assert.Equal(t, DefaultUserAgent, g.userAgent)
	assert.Equal(t, DefaultTimeout, g.client.Timeout)
}
