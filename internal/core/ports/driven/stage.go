package driven

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// Stage is one normalisation step over a consolidated table.
// Stages mutate the table in place and never drop rows.
type Stage interface {
	// Name returns the stage name for logging and configuration.
	Name() string

	// Apply transforms the table.
	// Per-cell failures degrade to null; an error is fatal for the run.
	Apply(ctx context.Context, table *domain.Table) error
}

// StagePipeline chains Stages.
type StagePipeline interface {
	// Process runs the table through all stages in order.
	Process(ctx context.Context, table *domain.Table) error
}
