package driving

import "github.com/custodia-labs/ecobin-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// GetValue returns the effective value of a single setting key.
	GetValue(key string) (string, error)

	// SetValue validates and persists a single setting key.
	SetValue(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// IsSecret reports whether key holds a credential.
	IsSecret(key string) bool

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
