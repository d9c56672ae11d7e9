package driven

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// AnalyticsStore answers aggregate questions over a normalised table.
type AnalyticsStore interface {
	// Load replaces the store contents with the table's records.
	Load(ctx context.Context, table *domain.Table) error

	// YearCounts returns row counts per year, ascending; undated rows are excluded.
	YearCounts(ctx context.Context) ([]domain.YearCount, error)

	// UndatedCount returns the number of rows without a year.
	UndatedCount(ctx context.Context) (int, error)

	// CoordinateCompleteness returns per-year coordinate completeness, ascending.
	CoordinateCompleteness(ctx context.Context) ([]domain.CoordinateStat, error)

	// Cantons returns the distinct cantons per province with row counts,
	// each list sorted by name.
	Cantons(ctx context.Context) (map[string][]domain.CantonCount, error)

	// Close releases the store.
	Close() error
}
