// Package nominatim provides a reverse geocoder backed by an
// OpenStreetMap Nominatim server.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
)

// Ensure Geocoder implements the interface.
var _ driven.Geocoder = (*Geocoder)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = domain.DefaultNominatimURL
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "whereabouts"

	// DefaultRequestsPerSecond follows the public server's usage policy.
	DefaultRequestsPerSecond = 1.0
)

// Config holds configuration for the Nominatim geocoder.
type Config struct {
	// BaseURL is the Nominatim API base URL.
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration

	// UserAgent identifies the application, as required by the usage policy.
	UserAgent string

	// RequestsPerSecond throttles outgoing requests (default: 1).
	RequestsPerSecond float64

	// Language is sent as Accept-Language. Optional.
	Language string
}

// Geocoder reverse geocodes coordinates through the Nominatim HTTP API.
type Geocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	language  string
	limiter   *rate.Limiter
}

// reverseResponse is the jsonv2 reverse lookup response.
type reverseResponse struct {
	DisplayName string         `json:"display_name"`
	Address     addressDetails `json:"address"`
	Error       string         `json:"error"`
}

type addressDetails struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	Hamlet      string `json:"hamlet"`
	Postcode    string `json:"postcode"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// NewGeocoder creates a new Nominatim geocoder.
func NewGeocoder(cfg Config) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Geocoder{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// ReverseGeocode looks up the address at the coordinates. Nominatim
// answers a reverse query with a single place, so at most one candidate
// is returned whatever maxResults asks for.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64, maxResults int) (domain.AddressCandidates, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("%w: max results must be positive", domain.ErrInvalidInput)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nominatim: wait for rate limit: %w", err)
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("addressdetails", "1")
	query.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("nominatim: create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")
	if g.language != "" {
		req.Header.Set("Accept-Language", g.language)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: nominatim: send request: %v", domain.ErrTransientProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}

	// "Unable to geocode" arrives as a 200 with an error field.
	if body.Error != "" {
		return domain.AddressCandidates{}, nil
	}

	return domain.AddressCandidates{toAddress(body)}, nil
}

func statusError(resp *http.Response) error {
	msg := "failed to read response"
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		msg = strings.TrimSpace(string(data))
	}

	err := fmt.Errorf("nominatim error (status %d): %s", resp.StatusCode, msg)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return errors.Join(domain.ErrTransientProvider, err)
	}
	return err
}

func toAddress(r reverseResponse) domain.Address {
	a := r.Address
	locality := firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Suburb)

	var lines []string
	if street := strings.TrimSpace(a.Road + " " + a.HouseNumber); street != "" {
		lines = append(lines, street)
	}
	if place := strings.TrimSpace(a.Postcode + " " + locality); place != "" {
		lines = append(lines, place)
	}
	if len(lines) == 0 && r.DisplayName != "" {
		lines = append(lines, r.DisplayName)
	}

	return domain.Address{
		Lines:       lines,
		Locality:    locality,
		PostalCode:  a.Postcode,
		CountryCode: strings.ToUpper(a.CountryCode),
		CountryName: a.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
