package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/whereabouts/internal/core/domain"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driven"
	"github.com/custodia-labs/whereabouts/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLocationAccuracy    = "location.accuracy"
	keyLocationMaxUpdates  = "location.max_updates"
	keyLocationIntervalMS  = "location.interval_ms"
	keyGeocodingProvider   = "geocoding.provider"
	keyGeocodingMaxResults = "geocoding.max_results"
	keyGeocodingBaseURL    = "geocoding.base_url"
	keyMotionPollMS        = "motion.poll_interval_ms"
	keySimLatitude         = "simulation.latitude"
	keySimLongitude        = "simulation.longitude"
	keySimUnavailable      = "simulation.location_unavailable"
	keySimGeocodeFailEvery = "simulation.geocode_failure_every"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
)

var settingKeys = map[string]keyKind{
	keyLocationAccuracy:    kindString,
	keyLocationMaxUpdates:  kindInt,
	keyLocationIntervalMS:  kindInt,
	keyGeocodingProvider:   kindString,
	keyGeocodingMaxResults: kindInt,
	keyGeocodingBaseURL:    kindString,
	keyMotionPollMS:        kindInt,
	keySimLatitude:         kindFloat,
	keySimLongitude:        kindFloat,
	keySimUnavailable:      kindBool,
	keySimGeocodeFailEvery: kindInt,
}

// SettingsService manages provider configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset keys take their default.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Location: domain.LocationSettings{
			Accuracy:   domain.AccuracyTier(s.getString(keyLocationAccuracy, defaults.Location.Accuracy.String())),
			MaxUpdates: s.getInt(keyLocationMaxUpdates, defaults.Location.MaxUpdates),
			Interval:   s.getMillis(keyLocationIntervalMS, defaults.Location.Interval),
		},
		Geocoding: domain.GeocodingSettings{
			Provider:   domain.GeocoderKind(s.getString(keyGeocodingProvider, string(defaults.Geocoding.Provider))),
			MaxResults: s.getInt(keyGeocodingMaxResults, defaults.Geocoding.MaxResults),
			BaseURL:    s.getString(keyGeocodingBaseURL, defaults.Geocoding.BaseURL),
		},
		Motion: domain.MotionSettings{
			PollInterval: s.getMillis(keyMotionPollMS, defaults.Motion.PollInterval),
		},
		Simulation: domain.SimulationSettings{
			Latitude:            s.getFloat(keySimLatitude, defaults.Simulation.Latitude),
			Longitude:           s.getFloat(keySimLongitude, defaults.Simulation.Longitude),
			LocationUnavailable: s.configStore.GetBool(keySimUnavailable),
			GeocodeFailureEvery: s.getInt(keySimGeocodeFailEvery, defaults.Simulation.GeocodeFailureEvery),
		},
	}

	// Invalid enum values fall back to defaults.
	if !settings.Location.Accuracy.IsValid() {
		settings.Location.Accuracy = defaults.Location.Accuracy
	}
	if !settings.Geocoding.Provider.IsValid() {
		settings.Geocoding.Provider = defaults.Geocoding.Provider
	}

	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		keyLocationAccuracy:    settings.Location.Accuracy.String(),
		keyLocationMaxUpdates:  settings.Location.MaxUpdates,
		keyLocationIntervalMS:  int(settings.Location.Interval / time.Millisecond),
		keyGeocodingProvider:   string(settings.Geocoding.Provider),
		keyGeocodingMaxResults: settings.Geocoding.MaxResults,
		keyGeocodingBaseURL:    settings.Geocoding.BaseURL,
		keyMotionPollMS:        int(settings.Motion.PollInterval / time.Millisecond),
		keySimLatitude:         settings.Simulation.Latitude,
		keySimLongitude:        settings.Simulation.Longitude,
		keySimUnavailable:      settings.Simulation.LocationUnavailable,
		keySimGeocodeFailEvery: settings.Simulation.GeocodeFailureEvery,
	}
	for _, key := range s.Keys() {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type, validates the resulting
// settings and persists the single key.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		parsed, err = strconv.ParseFloat(value, 64)
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	default:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	// Validate against the full settings before persisting.
	current, err := s.Get()
	if err != nil {
		return err
	}
	candidate := applySetting(*current, key, parsed)
	if err := candidate.Validate(); err != nil {
		return err
	}

	return s.configStore.Set(key, parsed)
}

func applySetting(st domain.Settings, key string, v any) domain.Settings {
	switch key {
	case keyLocationAccuracy:
		st.Location.Accuracy = domain.AccuracyTier(v.(string))
	case keyLocationMaxUpdates:
		st.Location.MaxUpdates = v.(int)
	case keyLocationIntervalMS:
		st.Location.Interval = time.Duration(v.(int)) * time.Millisecond
	case keyGeocodingProvider:
		st.Geocoding.Provider = domain.GeocoderKind(v.(string))
	case keyGeocodingMaxResults:
		st.Geocoding.MaxResults = v.(int)
	case keyGeocodingBaseURL:
		st.Geocoding.BaseURL = v.(string)
	case keyMotionPollMS:
		st.Motion.PollInterval = time.Duration(v.(int)) * time.Millisecond
	case keySimLatitude:
		st.Simulation.Latitude = v.(float64)
	case keySimLongitude:
		st.Simulation.Longitude = v.(float64)
	case keySimUnavailable:
		st.Simulation.LocationUnavailable = v.(bool)
	case keySimGeocodeFailEvery:
		st.Simulation.GeocodeFailureEvery = v.(int)
	}
	return st
}

// Keys lists the recognised configuration keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns the stored value when the key exists, even if it is 0.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); ok {
		return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
	}
	return defaultVal
}
