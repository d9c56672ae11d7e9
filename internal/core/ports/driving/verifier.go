package driving

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// Verifier reconciles the clean output against the raw sources.
type Verifier interface {
	// Verify recounts the raw sources and compares with the clean file.
	// Discrepancies are reported, never returned as errors.
	Verify(ctx context.Context) (*domain.VerificationReport, error)
}

// Inspector answers data-quality questions about the clean file.
type Inspector interface {
	// CoordinateCompleteness returns per-year coordinate completeness.
	CoordinateCompleteness(ctx context.Context) ([]domain.CoordinateStat, error)

	// AccentConflicts lists canton spellings that differ only by accents or case.
	AccentConflicts(ctx context.Context) ([]domain.CantonConflict, error)

	// Cantons lists the distinct cantons of a province with row counts.
	Cantons(ctx context.Context, province string) ([]domain.CantonCount, error)
}
