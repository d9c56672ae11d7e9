package stages

import (
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
)

// Stage names.
const (
	NameColumns = "columns"
	NameDates   = "dates"
	NameNumeric = "numeric"
	NameText    = "text"
	NameAliases = "aliases"
	NameAgeBand = "ageband"
)

// DefaultOrder is the normalisation sequence. Aliases must follow text so
// the alias table only ever sees canonical spellings, and the age band
// must follow numeric coercion.
var DefaultOrder = []string{NameColumns, NameDates, NameNumeric, NameText, NameAliases, NameAgeBand}

// RegisterDefaults registers all built-in stages with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(NameColumns, buildColumns)
	r.Register(NameDates, buildDates)
	r.Register(NameNumeric, buildNumeric)
	r.Register(NameText, buildText)
	r.Register(NameAliases, buildAliases)
	r.Register(NameAgeBand, buildAgeBand)
}

func buildColumns(_ map[string]any) (driven.Stage, error) {
	return NewColumns(), nil
}

func buildDates(_ map[string]any) (driven.Stage, error) {
	return NewDates(), nil
}

func buildNumeric(_ map[string]any) (driven.Stage, error) {
	return NewNumeric(), nil
}

// buildText creates the categorical text stage.
// Supported config keys:
//   - required ([]string): canonical columns whose absence is fatal
func buildText(cfg map[string]any) (driven.Stage, error) {
	return NewText(getStringSliceFromConfig(cfg, "required")...), nil
}

// buildAliases creates the canton alias stage.
// Supported config keys:
//   - aliases (map[string]string): variant -> canonical spelling
func buildAliases(cfg map[string]any) (driven.Stage, error) {
	return NewAliases(getStringMapFromConfig(cfg, "aliases"))
}

func buildAgeBand(_ map[string]any) (driven.Stage, error) {
	return NewAgeBand(), nil
}

// getStringSliceFromConfig safely extracts a string slice from generic config.
// Handles []string and the []any produced by TOML/JSON parsing.
func getStringSliceFromConfig(cfg map[string]any, key string) []string {
	val, ok := cfg[key]
	if !ok {
		return nil
	}

	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// getStringMapFromConfig safely extracts a string map from generic config.
func getStringMapFromConfig(cfg map[string]any, key string) map[string]string {
	val, ok := cfg[key]
	if !ok {
		return nil
	}

	switch v := val.(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			if s, ok := item.(string); ok {
				out[k] = s
			}
		}
		return out
	default:
		return nil
	}
}
