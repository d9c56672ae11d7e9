package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
	textnorm "github.com/custodia-labs/homicide-etl/internal/normalisers/text"
)

// Ensure InspectorService implements the interface.
var _ driving.Inspector = (*InspectorService)(nil)

// InspectorService answers data-quality questions about a normalised file.
// Findings feed the hand-maintained alias table; nothing is merged here.
type InspectorService struct {
	store     driven.TableStore
	analytics driven.AnalyticsStore
	path      string
	loaded    bool
}

// NewInspectorService creates an inspector over the normalised file at path.
func NewInspectorService(store driven.TableStore, analytics driven.AnalyticsStore, path string) *InspectorService {
	return &InspectorService{store: store, analytics: analytics, path: path}
}

// CoordinateCompleteness returns per-year coordinate completeness.
func (s *InspectorService) CoordinateCompleteness(ctx context.Context) ([]domain.CoordinateStat, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.analytics.CoordinateCompleteness(ctx)
}

// AccentConflicts lists, per province, canton spellings that differ only
// by accents, case, punctuation or spacing.
func (s *InspectorService) AccentConflicts(ctx context.Context) ([]domain.CantonConflict, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	byProvince, err := s.analytics.Cantons(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string][]string, len(byProvince))
	for province, cantons := range byProvince {
		for _, c := range cantons {
			names[province] = append(names[province], c.Name)
		}
	}
	return FindConflicts(names), nil
}

// Cantons lists the distinct cantons of a province with row counts,
// sorted by name.
func (s *InspectorService) Cantons(ctx context.Context, province string) ([]domain.CantonCount, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	byProvince, err := s.analytics.Cantons(ctx)
	if err != nil {
		return nil, err
	}
	cantons, ok := byProvince[textnorm.Canonical(province)]
	if !ok {
		return nil, fmt.Errorf("%w: province %q", domain.ErrNoData, province)
	}
	return cantons, nil
}

func (s *InspectorService) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	table, err := s.store.Read(ctx, s.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := s.analytics.Load(ctx, table); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// FindConflicts groups each province's spellings by ConflictKey and keeps
// the groups with more than one spelling. Output is sorted by province then key.
func FindConflicts(byProvince map[string][]string) []domain.CantonConflict {
	provinces := make([]string, 0, len(byProvince))
	for p := range byProvince {
		provinces = append(provinces, p)
	}
	sort.Strings(provinces)

	var out []domain.CantonConflict
	for _, province := range provinces {
		groups := make(map[string][]string)
		for _, canton := range byProvince[province] {
			key := ConflictKey(canton)
			groups[key] = append(groups[key], canton)
		}
		keys := make([]string, 0, len(groups))
		for k, spellings := range groups {
			if len(spellings) > 1 {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			spellings := groups[k]
			sort.Strings(spellings)
			out = append(out, domain.CantonConflict{Province: province, Key: k, Spellings: spellings})
		}
	}
	return out
}

// ConflictKey reduces a spelling to its folded letters and digits.
func ConflictKey(s string) string {
	folded := strings.ToUpper(textnorm.Fold(s))
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
