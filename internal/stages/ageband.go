package stages

import (
	"context"
	"strconv"

	"github.com/custodia-labs/homicide-etl/internal/core/domain"
	"github.com/custodia-labs/homicide-etl/internal/core/ports/driven"
)

var _ driven.Stage = (*AgeBand)(nil)

// AgeBand derives the age range from the coerced age.
type AgeBand struct{}

// NewAgeBand creates the age band stage.
func NewAgeBand() *AgeBand {
	return &AgeBand{}
}

// Name returns the stage name.
func (a *AgeBand) Name() string {
	return NameAgeBand
}

// Apply fills the age range; it is null wherever age is null.
func (a *AgeBand) Apply(_ context.Context, table *domain.Table) error {
	table.AddColumn(domain.ColAgeRange)
	for _, row := range table.Rows {
		row[domain.ColAgeRange] = ""
		age, err := strconv.Atoi(row[domain.ColAge])
		if err != nil {
			continue
		}
		if band, ok := domain.AgeRangeFor(age); ok {
			row[domain.ColAgeRange] = string(band)
		}
	}
	return nil
}
