package driving

import "github.com/custodia-labs/homicide-etl/internal/core/domain"

// SettingsService resolves run settings from configuration.
type SettingsService interface {
	// Get returns the configured settings over the defaults.
	Get() (*domain.Settings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
