package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driving"
	"github.com/custodia-labs/homicide-etl/internal/logger"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineService runs the batch: select, load, consolidate, normalise.
type PipelineService struct {
	selector   *SourceSelector
	loader     *Loader
	normaliser *Normaliser
	store      driven.TableStore

	consolidatedPath string
	cleanPath        string
}

// NewPipelineService creates the pipeline.
func NewPipelineService(
	selector *SourceSelector,
	loader *Loader,
	normaliser *Normaliser,
	store driven.TableStore,
	settings domain.Settings,
) *PipelineService {
	return &PipelineService{
		selector:         selector,
		loader:           loader,
		normaliser:       normaliser,
		store:            store,
		consolidatedPath: OutputPath(settings.Sources.Dir, settings.Output.Consolidated),
		cleanPath:        OutputPath(settings.Sources.Dir, settings.Output.Clean),
	}
}

// Run consolidates the sources and normalises the result.
func (p *PipelineService) Run(ctx context.Context) (*driving.RunResult, error) {
	result, table, err := p.consolidate(ctx)
	if err != nil {
		return result, err
	}
	if err := p.clean(ctx, result, table); err != nil {
		return result, err
	}
	return result, nil
}

// Consolidate writes the merged, unnormalised table.
func (p *PipelineService) Consolidate(ctx context.Context) (*driving.RunResult, error) {
	result, _, err := p.consolidate(ctx)
	return result, err
}

// Clean normalises the intermediate file written by a previous Consolidate.
func (p *PipelineService) Clean(ctx context.Context) (*driving.RunResult, error) {
	result := p.newResult()
	logger.Section("Clean")

	table, err := p.store.Read(ctx, p.consolidatedPath)
	if err != nil {
		return result, fmt.Errorf("read consolidated table: %w", err)
	}
	result.ConsolidatedRows = table.Len()
	result.ConsolidatedPath = p.consolidatedPath

	if err := p.clean(ctx, result, table); err != nil {
		return result, err
	}
	return result, nil
}

func (p *PipelineService) newResult() *driving.RunResult {
	result := &driving.RunResult{RunID: uuid.NewString()}
	logger.Debug("Run %s", result.RunID)
	return result
}

func (p *PipelineService) consolidate(ctx context.Context) (*driving.RunResult, *domain.Table, error) {
	result := p.newResult()
	logger.Section("Select sources")

	incremental, err := p.selector.Select()
	if err != nil {
		return result, nil, err
	}
	historical := p.selector.Historical()
	logger.Info("Historical source: %s", historical.Name())
	logger.Info("Incremental source: %s (period %d)", incremental.Name(), incremental.Period)

	logger.Section("Load")
	hist, err := p.load(ctx, historical, &result.Historical, result)
	if err != nil {
		return result, nil, err
	}
	inc, err := p.load(ctx, incremental, &result.Incremental, result)
	if err != nil {
		return result, nil, err
	}
	if !hist.Located() && !inc.Located() {
		return result, nil, fmt.Errorf("%w: no table located in %s or %s",
			domain.ErrNoData, historical.Name(), incremental.Name())
	}

	logger.Section("Consolidate")
	table := Consolidate(p.consolidatedPath, hist.Table, inc.Table)
	result.ConsolidatedRows = table.Len()
	logger.Info("Consolidated %d rows (%d historical + %d incremental)",
		table.Len(), hist.Table.Len(), inc.Table.Len())

	if err := p.store.Write(ctx, p.consolidatedPath, table); err != nil {
		return result, nil, fmt.Errorf("write consolidated table: %w", err)
	}
	result.ConsolidatedPath = p.consolidatedPath
	return result, table, nil
}

func (p *PipelineService) load(
	ctx context.Context,
	src domain.Source,
	into *driving.SourceResult,
	result *driving.RunResult,
) (*LoadResult, error) {
	loaded, err := p.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	*into = driving.SourceResult{Source: src, Location: loaded.Location, Rows: loaded.Table.Len()}
	result.Warnings = append(result.Warnings, loaded.Warnings...)
	return loaded, nil
}

func (p *PipelineService) clean(ctx context.Context, result *driving.RunResult, table *domain.Table) error {
	if err := p.normaliser.Normalise(ctx, table); err != nil {
		return err
	}
	result.OutputRows = table.Len()

	if err := p.store.Write(ctx, p.cleanPath, table); err != nil {
		return fmt.Errorf("write clean table: %w", err)
	}
	result.CleanPath = p.cleanPath
	logger.Info("Wrote %d rows to %s", table.Len(), p.cleanPath)
	return nil
}

// OutputPath resolves an output filename against the working directory.
// Absolute names are kept as given.
func OutputPath(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
