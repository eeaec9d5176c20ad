package driving

import "github.com/custodia-labs/whereabouts/internal/core/domain"

// SettingsService manages provider configuration.
type SettingsService interface {
	// Get retrieves current settings, filling unset keys with defaults.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by its configuration key.
	// The value is parsed according to the key's type.
	Set(key, value string) error

	// Keys lists the recognised configuration keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
