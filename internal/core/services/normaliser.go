package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/logger"
	"github.com/custodia-labs/homicide-etl/internal/stages"
)

// Normaliser turns a consolidated table into the canonical schema.
type Normaliser struct {
	pipeline driven.StagePipeline
	stages   []string
}

// NewNormaliser builds the default stage sequence from the registry,
// configured from the normalisation settings.
func NewNormaliser(registry *stages.Registry, settings domain.NormaliseSettings) (*Normaliser, error) {
	cfgs := map[string]map[string]any{
		stages.NameText:    {"required": settings.Required},
		stages.NameAliases: {"aliases": settings.CantonAliases},
	}
	pipeline, err := registry.BuildPipeline(stages.DefaultOrder, cfgs)
	if err != nil {
		return nil, fmt.Errorf("build normaliser: %w", err)
	}
	return &Normaliser{pipeline: pipeline, stages: pipeline.Names()}, nil
}

// Normalise rewrites the table in place. It fails only when a structurally
// required column is absent; malformed cells become nulls.
func (n *Normaliser) Normalise(ctx context.Context, table *domain.Table) error {
	logger.Section("Normalise")
	logger.Debug("Stages: %v", n.stages)
	if err := n.pipeline.Process(ctx, table); err != nil {
		return fmt.Errorf("normalise %s: %w", table.Source, err)
	}
	return nil
}

// Stages returns the stage names in execution order.
func (n *Normaliser) Stages() []string {
	return n.stages
}
