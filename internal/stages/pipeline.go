// Package stages provides the normalisation steps applied to a consolidated table.
package stages

import (
	"context"
	"fmt"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
	"github.com/custodia-labs/homicide-etl/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.StagePipeline = (*Pipeline)(nil)

// Pipeline chains multiple Stages and runs them in order.
type Pipeline struct {
	stages []driven.Stage
}

// NewPipeline creates a new pipeline with the given stages.
// Stages are executed in the order provided.
func NewPipeline(stages ...driven.Stage) *Pipeline {
	return &Pipeline{
		stages: stages,
	}
}

// Process runs the table through all stages in order.
// The row count is checked after every stage: stages may null cells but
// must never add or drop rows.
func (p *Pipeline) Process(ctx context.Context, table *domain.Table) error {
	if table == nil {
		return fmt.Errorf("table is nil")
	}

	rows := table.Len()
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Stage %s: %d rows, %d columns", stage.Name(), table.Len(), len(table.Columns))
		if err := stage.Apply(ctx, table); err != nil {
			return fmt.Errorf("stage %s: %w", stage.Name(), err)
		}
		if table.Len() != rows {
			return fmt.Errorf("stage %s changed row count from %d to %d", stage.Name(), rows, table.Len())
		}
	}

	return nil
}

// Add appends a stage to the pipeline.
func (p *Pipeline) Add(stage driven.Stage) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names returns the stage names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}
