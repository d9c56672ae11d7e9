package driving

import (
	"context"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
)

// Pipeline runs the consolidation and normalisation batch.
type Pipeline interface {
	// Run selects the sources, consolidates them, and normalises the result.
	Run(ctx context.Context) (*RunResult, error)

	// Consolidate selects and merges the sources into the intermediate file
	// without normalising.
	Consolidate(ctx context.Context) (*RunResult, error)

	// Clean normalises an existing intermediate file into the clean file.
	Clean(ctx context.Context) (*RunResult, error)
}

// SourceResult describes what one source contributed to a run.
type SourceResult struct {
	Source   domain.Source
	Location *domain.TableLocation
	Rows     int
}

// RunResult summarises a pipeline run.
type RunResult struct {
	// RunID identifies the run in logs.
	RunID string

	Historical  SourceResult
	Incremental SourceResult

	ConsolidatedRows int
	OutputRows       int

	ConsolidatedPath string
	CleanPath        string

	// Warnings collects recoverable conditions met during the run.
	Warnings []string
}
