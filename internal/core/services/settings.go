package services

import (
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySourcesDir         = "sources.dir"
	keySourcesHistorical  = "sources.historical"
	keySourcesPattern     = "sources.incremental_pattern"
	keyOutputConsolidated = "output.consolidated"
	keyOutputClean        = "output.clean"
	keyLocatorPrimary     = "locator.primary"
	keyLocatorAnyOf       = "locator.any_of"
	keyNormaliseRequired  = "normalise.required"
	keyVerifyTolerance    = "verify.tolerance"
	keyVerifyDateMarker   = "verify.date_marker"
	keyCantonAliases      = "aliases.canton"
)

// SettingsService resolves run settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings over the defaults.
// Configured canton aliases are merged over the built-in table; the merged
// table must be free of chains.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Sources: domain.SourceSettings{
			Dir:                s.getString(keySourcesDir, defaults.Sources.Dir),
			Historical:         s.getString(keySourcesHistorical, defaults.Sources.Historical),
			IncrementalPattern: s.getString(keySourcesPattern, defaults.Sources.IncrementalPattern),
		},
		Output: domain.OutputSettings{
			Consolidated: s.getString(keyOutputConsolidated, defaults.Output.Consolidated),
			Clean:        s.getString(keyOutputClean, defaults.Output.Clean),
		},
		Locator: domain.MarkerSet{
			Primary: s.getString(keyLocatorPrimary, defaults.Locator.Primary),
			AnyOf:   s.getStringSlice(keyLocatorAnyOf, defaults.Locator.AnyOf),
		},
		Normalise: domain.NormaliseSettings{
			Required:      s.getStringSlice(keyNormaliseRequired, defaults.Normalise.Required),
			CantonAliases: s.getAliases(defaults.Normalise.CantonAliases),
		},
		Verify: domain.VerifySettings{
			Tolerance:  s.getInt(keyVerifyTolerance, defaults.Verify.Tolerance),
			DateMarker: s.getString(keyVerifyDateMarker, defaults.Verify.DateMarker),
		},
	}

	if settings.Verify.Tolerance < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, keyVerifyTolerance)
	}
	if err := domain.ValidateAliases(settings.Normalise.CantonAliases); err != nil {
		return nil, fmt.Errorf("%s: %w", keyCantonAliases, err)
	}

	return settings, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// SaveDefaults writes the default settings to the config store, leaving
// keys that are already set untouched.
func (s *SettingsService) SaveDefaults() error {
	d := domain.DefaultSettings()
	values := map[string]any{
		keySourcesDir:         d.Sources.Dir,
		keySourcesHistorical:  d.Sources.Historical,
		keySourcesPattern:     d.Sources.IncrementalPattern,
		keyOutputConsolidated: d.Output.Consolidated,
		keyOutputClean:        d.Output.Clean,
		keyLocatorPrimary:     d.Locator.Primary,
		keyLocatorAnyOf:       d.Locator.AnyOf,
		keyNormaliseRequired:  d.Normalise.Required,
		keyVerifyTolerance:    d.Verify.Tolerance,
		keyVerifyDateMarker:   d.Verify.DateMarker,
	}
	for variant, canonical := range d.Normalise.CantonAliases {
		values[keyCantonAliases+"."+variant] = canonical
	}

	for key, val := range values {
		if _, exists := s.configStore.Get(key); exists {
			continue
		}
		if err := s.configStore.Set(key, val); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return s.configStore.Save()
}

// ConfigPath returns where the settings are stored.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getAliases(defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range s.configStore.GetStringMap(keyCantonAliases) {
		merged[k] = v
	}
	return merged
}
