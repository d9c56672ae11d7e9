package domain

import (
	"fmt"
	"sort"
)

// ScanWindow is how many rows of each sheet the table locator inspects.
const ScanWindow = 50

// Settings holds the run configuration.
type Settings struct {
	Sources   SourceSettings
	Output    OutputSettings
	Locator   MarkerSet
	Normalise NormaliseSettings
	Verify    VerifySettings
}

// SourceSettings says where the extracts live.
type SourceSettings struct {
	// Dir is the working directory holding the extracts.
	Dir string

	// Historical is the fixed filename of the multi-year extract.
	Historical string

	// IncrementalPattern is a glob matching candidate periodic extracts.
	IncrementalPattern string
}

// OutputSettings names the files written by a run, relative to the working directory.
type OutputSettings struct {
	Consolidated string
	Clean        string
}

// NormaliseSettings tunes the normaliser.
type NormaliseSettings struct {
	// Required lists the canonical columns whose absence is fatal.
	Required []string

	// CantonAliases maps a known variant spelling to its canonical form.
	CantonAliases map[string]string
}

// VerifySettings tunes the integrity check.
type VerifySettings struct {
	// Tolerance is the exclusive absolute bound on the row-count delta.
	Tolerance int

	// DateMarker identifies the date column when counting valid raw rows.
	DateMarker string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Sources: SourceSettings{
			Dir:                ".",
			Historical:         "mdi_homicidios_intencionales_pm_2014_2024.xlsx",
			IncrementalPattern: "*2025*.xlsx",
		},
		Output: OutputSettings{
			Consolidated: "homicidios_consolidado.csv",
			Clean:        "homicidios_clean.csv",
		},
		Locator: MarkerSet{
			Primary: "PROVINCIA",
			AnyOf:   []string{"FECHA", "ZONA", "CANTON"},
		},
		Normalise: NormaliseSettings{
			Required:      []string{ColDate, ColProvince, ColCanton},
			CantonAliases: DefaultCantonAliases(),
		},
		Verify: VerifySettings{
			Tolerance:  50,
			DateMarker: "FECHA",
		},
	}
}

// DefaultCantonAliases returns the built-in canton equivalence table.
// Entries are added by hand after reviewing the cantons report; the
// matcher is never made fuzzy because merging two real places is worse
// than leaving a duplicate unmerged.
func DefaultCantonAliases() map[string]string {
	return map[string]string{
		// Guayas
		"ALFREDO BAQUERIZO MORENO (JUJAN)": "ALFREDO BAQUERIZO MORENO",
		"CRNEL. MARCELINO MARIDUENA":       "CORONEL MARCELINO MARIDUENA",
		"GNRAL. ANTONIO ELIZALDE":          "GENERAL ANTONIO ELIZALDE",
	}
}

// ValidateAliases checks that an alias table is idempotent:
// no canonical value may itself be a variant key.
func ValidateAliases(aliases map[string]string) error {
	variants := make([]string, 0, len(aliases))
	for variant := range aliases {
		variants = append(variants, variant)
	}
	sort.Strings(variants)

	for _, variant := range variants {
		canonical := aliases[variant]
		if variant == "" || canonical == "" {
			return fmt.Errorf("%w: empty alias entry %q -> %q", ErrInvalidInput, variant, canonical)
		}
		if variant == canonical {
			continue
		}
		if next, ok := aliases[canonical]; ok && next != canonical {
			return fmt.Errorf("%w: alias chain %q -> %q -> %q", ErrInvalidInput, variant, canonical, next)
		}
	}
	return nil
}
