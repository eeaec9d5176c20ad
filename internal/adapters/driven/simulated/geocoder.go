package simulated

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure Geocoder implements the interface.
var _ driven.Geocoder = (*Geocoder)(nil)

// Place is a known address with its coordinates.
type Place struct {
	Latitude  float64
	Longitude float64
	Address   domain.Address
}

// DefaultPlaces surround the default simulation origin.
var DefaultPlaces = []Place{
	{
		Latitude: 52.229676, Longitude: 21.012229,
		Address: domain.Address{
			Lines:       []string{"Aleje Jerozolimskie 44", "00-024 Warszawa"},
			Locality:    "Warszawa",
			PostalCode:  "00-024",
			CountryCode: "PL",
			CountryName: "Poland",
		},
	},
	{
		Latitude: 52.231958, Longitude: 21.006725,
		Address: domain.Address{
			Lines:       []string{"Plac Defilad 1", "00-901 Warszawa"},
			Locality:    "Warszawa",
			PostalCode:  "00-901",
			CountryCode: "PL",
			CountryName: "Poland",
		},
	},
	{
		Latitude: 52.228185, Longitude: 21.016540,
		Address: domain.Address{
			Lines:       []string{"Nowy Świat 64", "00-357 Warszawa"},
			Locality:    "Warszawa",
			PostalCode:  "00-357",
			CountryCode: "PL",
			CountryName: "Poland",
		},
	},
	{
		Latitude: 52.247627, Longitude: 21.013669,
		Address: domain.Address{
			Lines:       []string{"Plac Zamkowy 4", "00-277 Warszawa"},
			Locality:    "Warszawa",
			PostalCode:  "00-277",
			CountryCode: "PL",
			CountryName: "Poland",
		},
	},
}

// DefaultRadiusMeters bounds how far a place may be from the query.
const DefaultRadiusMeters = 1500.0

// GeocoderConfig configures the simulated geocoder.
type GeocoderConfig struct {
	// Places is the lookup table. Defaults to DefaultPlaces.
	Places []Place

	// RadiusMeters is the search radius. Defaults to DefaultRadiusMeters.
	RadiusMeters float64

	// Latency delays every lookup. Zero answers immediately.
	Latency time.Duration

	// FailureEvery makes every Nth lookup fail transiently. 0 disables.
	FailureEvery int
}

// Geocoder resolves coordinates against a fixed table of places.
type Geocoder struct {
	cfg GeocoderConfig

	mu    sync.Mutex
	calls int
}

// NewGeocoder creates a simulated geocoder.
func NewGeocoder(cfg GeocoderConfig) *Geocoder {
	if cfg.Places == nil {
		cfg.Places = DefaultPlaces
	}
	if cfg.RadiusMeters <= 0 {
		cfg.RadiusMeters = DefaultRadiusMeters
	}
	return &Geocoder{cfg: cfg}
}

// ReverseGeocode returns the places within the search radius, nearest first.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64, maxResults int) (domain.AddressCandidates, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive", domain.ErrInvalidInput)
	}

	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()

	if g.cfg.Latency > 0 {
		timer := time.NewTimer(g.cfg.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if g.cfg.FailureEvery > 0 && call%g.cfg.FailureEvery == 0 {
		return nil, fmt.Errorf("%w: simulated lookup %d failed", domain.ErrTransientProvider, call)
	}

	type hit struct {
		distance float64
		address  domain.Address
	}
	var hits []hit
	for _, p := range g.cfg.Places {
		d := distanceMeters(lat, lon, p.Latitude, p.Longitude)
		if d <= g.cfg.RadiusMeters {
			hits = append(hits, hit{distance: d, address: p.Address})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	result := make(domain.AddressCandidates, 0, len(hits))
	for _, h := range hits {
		result = append(result, h.address)
	}
	return result, nil
}

// Calls returns the number of lookups issued so far.
func (g *Geocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// distanceMeters is the haversine distance between two coordinates.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6_371_000.0
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadius * math.Asin(math.Sqrt(a))
}
